package data

import (
	"encoding/csv"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
)

// CSVHeader is the column layout read by ReadCustomersCSV and written by
// GenerateSyntheticCustomers.
var CSVHeader = []string{
	"CustomerId", "CreditScore", "Geography", "Gender", "Age", "Tenure", "Balance",
	"NumOfProducts", "HasCrCard", "IsActiveMember", "EstimatedSalary",
}

// SyntheticCustomers draws n in-domain records using the given category lists.
// The same seed always yields the same records.
func SyntheticCustomers(n int, geographies, genders []string, seed int64) []CustomerRecord {
	rng := rand.New(rand.NewSource(seed))
	out := make([]CustomerRecord, 0, n)
	for i := 0; i < n; i++ {
		credit := int(math.Round(rng.NormFloat64()*95 + 650))
		if credit < MinCreditScore {
			credit = MinCreditScore
		}
		if credit > MaxCreditScore {
			credit = MaxCreditScore
		}

		age := int(math.Round(rng.NormFloat64()*10 + 39))
		if age < MinAge {
			age = MinAge
		}
		if age > MaxAge {
			age = MaxAge
		}

		balance := 0.0
		if rng.Float64() >= 0.36 {
			balance = math.Round((rng.NormFloat64()*30000+120000)*100) / 100
			if balance < 0 {
				balance = 0
			}
		}

		products := 1
		switch r := rng.Float64(); {
		case r < 0.5:
			products = 1
		case r < 0.96:
			products = 2
		case r < 0.99:
			products = 3
		default:
			products = 4
		}

		out = append(out, CustomerRecord{
			CreditScore:     credit,
			Geography:       geographies[rng.Intn(len(geographies))],
			Gender:          genders[rng.Intn(len(genders))],
			Age:             age,
			Tenure:          rng.Intn(MaxTenure + 1),
			Balance:         balance,
			NumOfProducts:   products,
			HasCrCard:       rng.Float64() < 0.7,
			IsActiveMember:  rng.Float64() < 0.5,
			EstimatedSalary: math.Round(rng.Float64()*200000*100) / 100,
		})
	}
	return out
}

// GenerateSyntheticCustomers writes n synthetic records to outPath as CSV.
func GenerateSyntheticCustomers(n int, geographies, genders []string, seed int64, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(CSVHeader); err != nil {
		return err
	}
	for i, r := range SyntheticCustomers(n, geographies, genders, seed) {
		rec := []string{
			strconv.Itoa(15000000 + i),
			strconv.Itoa(r.CreditScore),
			r.Geography,
			r.Gender,
			strconv.Itoa(r.Age),
			strconv.Itoa(r.Tenure),
			strconv.FormatFloat(r.Balance, 'f', 2, 64),
			strconv.Itoa(r.NumOfProducts),
			strconv.Itoa(int(BoolToFloat(r.HasCrCard))),
			strconv.Itoa(int(BoolToFloat(r.IsActiveMember))),
			strconv.FormatFloat(r.EstimatedSalary, 'f', 2, 64),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
