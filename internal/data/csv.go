package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// CustomerRow is a record read from CSV together with its identifier.
type CustomerRow struct {
	ID     string
	Record CustomerRecord
}

// ReadCustomersCSV reads records laid out as CSVHeader. Column order in the file
// may differ; columns are matched by header name.
func ReadCustomersCSV(path string) ([]CustomerRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseCustomersCSV(f)
}

func ParseCustomersCSV(r io.Reader) ([]CustomerRow, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv has no header")
	}
	col := map[string]int{}
	for i, h := range rows[0] {
		col[strings.TrimSpace(h)] = i
	}
	for _, h := range CSVHeader[1:] {
		if _, ok := col[h]; !ok {
			return nil, fmt.Errorf("csv missing column %q", h)
		}
	}

	out := make([]CustomerRow, 0, len(rows)-1)
	for n, row := range rows[1:] {
		line := n + 2
		get := func(name string) string { return strings.TrimSpace(row[col[name]]) }
		atoi := func(name string) (int, error) {
			v, err := strconv.Atoi(get(name))
			if err != nil {
				return 0, fmt.Errorf("line %d: %s: %w", line, name, err)
			}
			return v, nil
		}
		flag := func(name string) (bool, error) {
			switch get(name) {
			case "1":
				return true, nil
			case "0":
				return false, nil
			}
			return false, fmt.Errorf("line %d: %s: %q is not 0 or 1", line, name, get(name))
		}
		atof := func(name string) (float64, error) {
			v, err := strconv.ParseFloat(get(name), 64)
			if err != nil {
				return 0, fmt.Errorf("line %d: %s: %w", line, name, err)
			}
			return v, nil
		}

		var rec CustomerRecord
		var errs [8]error
		rec.CreditScore, errs[0] = atoi("CreditScore")
		rec.Age, errs[1] = atoi("Age")
		rec.Tenure, errs[2] = atoi("Tenure")
		rec.Balance, errs[3] = atof("Balance")
		rec.NumOfProducts, errs[4] = atoi("NumOfProducts")
		rec.HasCrCard, errs[5] = flag("HasCrCard")
		rec.IsActiveMember, errs[6] = flag("IsActiveMember")
		rec.EstimatedSalary, errs[7] = atof("EstimatedSalary")
		for _, e := range errs {
			if e != nil {
				return nil, e
			}
		}
		rec.Geography = get("Geography")
		rec.Gender = get("Gender")

		id := strconv.Itoa(line - 1)
		if i, ok := col["CustomerId"]; ok {
			id = strings.TrimSpace(row[i])
		}
		out = append(out, CustomerRow{ID: id, Record: rec})
	}
	return out, nil
}
