package main

import (
    "encoding/csv"
    "flag"
    "fmt"
    "math"
    "os"
    "path/filepath"
    "strconv"

    "github.com/prometheus/client_golang/prometheus"
    "go.uber.org/zap"
    "gonum.org/v1/plot"
    "gonum.org/v1/plot/plotter"
    "gonum.org/v1/plot/plotutil"
    "gonum.org/v1/plot/vg"

    "churnpredictor/internal/artifacts"
    "churnpredictor/internal/churn"
    "churnpredictor/internal/config"
    "churnpredictor/internal/data"
    "churnpredictor/internal/metrics"
    "churnpredictor/pkg/utils"
)

// sweep describes how to vary one numeric attribute of a customer record.
type sweep struct {
    min, max float64
    integer  bool
    label    string
    set      func(r *data.CustomerRecord, x float64)
}

var sweeps = map[string]sweep{
    "age": {data.MinAge, data.MaxAge, true, "Age",
        func(r *data.CustomerRecord, x float64) { r.Age = int(x) }},
    "credit_score": {data.MinCreditScore, data.MaxCreditScore, true, "Credit score",
        func(r *data.CustomerRecord, x float64) { r.CreditScore = int(x) }},
    "tenure": {data.MinTenure, data.MaxTenure, true, "Tenure (years)",
        func(r *data.CustomerRecord, x float64) { r.Tenure = int(x) }},
    "num_of_products": {data.MinNumOfProducts, data.MaxNumOfProducts, true, "Number of products",
        func(r *data.CustomerRecord, x float64) { r.NumOfProducts = int(x) }},
    "balance": {0, 250000, false, "Balance",
        func(r *data.CustomerRecord, x float64) { r.Balance = x }},
    "estimated_salary": {0, 200000, false, "Estimated salary",
        func(r *data.CustomerRecord, x float64) { r.EstimatedSalary = x }},
}

func main() {
    logger := utils.Logger()
    defer logger.Sync()

    configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "YAML or TOML config file with artifact paths")
    feature := flag.String("feature", "age", "attribute to sweep: age|credit_score|tenure|num_of_products|balance|estimated_salary")
    points := flag.Int("points", 50, "points per curve (integer attributes use at most one point per value)")
    outImg := flag.String("out_img", "data/churn_curve.png", "PNG output")
    outCsv := flag.String("out_csv", "data/churn_curve.csv", "curve CSV output")
    synthetic := flag.Int("synthetic", 0, "generate this many synthetic customers into -synthetic_out")
    syntheticOut := flag.String("synthetic_out", "data/customers.csv", "synthetic customers CSV")
    seed := flag.Int64("seed", 42, "synthetic generator seed")
    dataPath := flag.String("data", "", "customers CSV to score")
    scoresOut := flag.String("scores_out", "data/scores.csv", "scored customers CSV")
    flag.Parse()

    cfg, err := config.Load(*configPath)
    if err != nil { logger.Fatal("load config", zap.Error(err)) }
    bundle, err := artifacts.Load(cfg.ArtifactPaths())
    if err != nil { logger.Fatal("load artifacts", zap.Error(err)) }
    svc := churn.NewService(bundle, metrics.New(prometheus.NewRegistry()), logger)
    md := svc.Metadata()

    if *synthetic > 0 {
        logger.Info("generating synthetic customers", zap.Int("n", *synthetic), zap.String("out", *syntheticOut))
        if err := data.GenerateSyntheticCustomers(*synthetic, md.Geographies, md.Genders, *seed, *syntheticOut); err != nil {
            logger.Fatal("generate customers", zap.Error(err))
        }
    }

    if *dataPath != "" {
        if err := scoreFile(logger, svc, *dataPath, *scoresOut); err != nil {
            logger.Fatal("score customers", zap.Error(err), zap.String("data", *dataPath))
        }
    }

    sw, ok := sweeps[*feature]
    if !ok { logger.Fatal("unknown feature", zap.String("feature", *feature)) }
    xs := sweepValues(sw, *points)
    curves := make(map[string][]float64, len(md.Geographies))
    for _, geo := range md.Geographies {
        ys := make([]float64, len(xs))
        for i, x := range xs {
            rec := baseRecord(geo, md.Genders[0])
            sw.set(&rec, x)
            pred, err := svc.Predict(rec)
            if err != nil { logger.Fatal("predict", zap.Error(err), zap.String("geography", geo), zap.Float64("x", x)) }
            ys[i] = pred.Probability
        }
        curves[geo] = ys
        logger.Info("curve", zap.String("geography", geo), zap.Float64("min_p", minOf(ys)), zap.Float64("max_p", maxOf(ys)))
    }

    if err := writeCSV(*outCsv, *feature, xs, md.Geographies, curves); err != nil {
        logger.Error("write curve CSV", zap.Error(err))
    } else {
        logger.Info("curve saved", zap.String("path", *outCsv))
    }
    if err := plotCurve(*outImg, sw.label, md.Model, md.Threshold, xs, md.Geographies, curves); err != nil {
        logger.Error("write curve PNG", zap.Error(err))
    } else {
        logger.Info("plot saved", zap.String("path", *outImg))
    }
}

// baseRecord is the form's default customer.
func baseRecord(geography, gender string) data.CustomerRecord {
    return data.CustomerRecord{
        CreditScore:   650,
        Geography:     geography,
        Gender:        gender,
        Age:           30,
        Tenure:        2,
        NumOfProducts: 1,
    }
}

func sweepValues(sw sweep, points int) []float64 {
    if points < 2 { points = 2 }
    if sw.integer && int(sw.max-sw.min)+1 < points { points = int(sw.max-sw.min) + 1 }
    xs := make([]float64, 0, points)
    step := (sw.max - sw.min) / float64(points-1)
    for i := 0; i < points; i++ {
        x := sw.min + step*float64(i)
        if sw.integer { x = math.Round(x) }
        xs = append(xs, x)
    }
    return xs
}

func scoreFile(logger *zap.Logger, svc *churn.Service, in, out string) error {
    rows, err := data.ReadCustomersCSV(in)
    if err != nil { return err }
    recs := make([]data.CustomerRecord, len(rows))
    for i, r := range rows { recs[i] = r.Record }
    results := svc.PredictBatch(recs)

    if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil { return err }
    f, err := os.Create(out)
    if err != nil { return err }
    defer f.Close()
    w := csv.NewWriter(f)
    if err := w.Write([]string{"CustomerId", "probability", "label", "error"}); err != nil { return err }
    high, rejected := 0, 0
    for i, r := range results {
        rec := []string{rows[i].ID, "", "", ""}
        if r.Err != nil {
            rejected++
            rec[3] = r.Err.Error()
        } else {
            if r.Prediction.HighRisk() { high++ }
            rec[1] = strconv.FormatFloat(r.Prediction.Probability, 'f', 6, 64)
            rec[2] = string(r.Prediction.Label)
        }
        if err := w.Write(rec); err != nil { return err }
    }
    w.Flush()
    if err := w.Error(); err != nil { return err }
    logger.Info("customers scored", zap.Int("rows", len(rows)), zap.Int("high_risk", high),
        zap.Int("rejected", rejected), zap.String("out", out))
    return nil
}

func writeCSV(path, feature string, xs []float64, geos []string, curves map[string][]float64) error {
    if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { return err }
    f, err := os.Create(path)
    if err != nil { return err }
    defer f.Close()
    w := csv.NewWriter(f)
    hdr := append([]string{feature}, geos...)
    if err := w.Write(hdr); err != nil { return err }
    for i, x := range xs {
        rec := []string{strconv.FormatFloat(x, 'f', -1, 64)}
        for _, g := range geos { rec = append(rec, fmt.Sprintf("%.6f", curves[g][i])) }
        if err := w.Write(rec); err != nil { return err }
    }
    w.Flush()
    return w.Error()
}

func plotCurve(path, xLabel, model string, cut float64, xs []float64, geos []string, curves map[string][]float64) error {
    p := plot.New()
    p.Title.Text = fmt.Sprintf("Churn probability by %s (%s)", xLabel, model)
    p.X.Label.Text = xLabel
    p.Y.Label.Text = "P(churn)"
    p.Y.Min = 0
    p.Y.Max = 1

    args := make([]interface{}, 0, 2*len(geos)+2)
    for _, g := range geos {
        pts := make(plotter.XYs, len(xs))
        for i := range xs { pts[i].X = xs[i]; pts[i].Y = curves[g][i] }
        args = append(args, g, pts)
    }
    if err := plotutil.AddLinePoints(p, args...); err != nil { return err }

    threshold, err := plotter.NewLine(plotter.XYs{{X: xs[0], Y: cut}, {X: xs[len(xs)-1], Y: cut}})
    if err != nil { return err }
    threshold.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
    p.Add(threshold)
    p.Legend.Add("threshold", threshold)

    if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { return err }
    return p.Save(8*vg.Inch, 4*vg.Inch, path)
}

func minOf(xs []float64) float64 {
    m := math.Inf(1)
    for _, x := range xs { m = math.Min(m, x) }
    return m
}

func maxOf(xs []float64) float64 {
    m := math.Inf(-1)
    for _, x := range xs { m = math.Max(m, x) }
    return m
}
