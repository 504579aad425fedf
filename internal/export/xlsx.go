// Package export writes validation summaries as XLSX workbooks for the
// study's result tables.
package export

import (
	"fmt"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/facloc-cli/internal/validate"
)

var summaryHeader = []string{
	"solution", "valid", "failure", "open_facilities", "budget", "violating_facilities", "objective",
}

// WriteValidationSummary writes one row per validated solution. Reports are
// indexed in input order, matching their position in the results file.
func WriteValidationSummary(reports []*validate.Report, path string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("validation")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, name := range summaryHeader {
		header.AddCell().SetString(name)
	}

	for i, rep := range reports {
		row := sheet.AddRow()
		row.AddCell().SetInt(i)
		row.AddCell().SetString(strconv.FormatBool(rep.Valid))
		row.AddCell().SetString(string(rep.Failure))
		row.AddCell().SetInt(rep.OpenCount)
		row.AddCell().SetInt(rep.Budget)
		row.AddCell().SetInt(len(rep.NotSatisfied))
		if rep.Valid {
			row.AddCell().SetFloatWithFormat(rep.Objective, "0.0000")
		} else {
			row.AddCell().SetString("")
		}
	}

	if err := file.Save(path); err != nil {
		return eris.Wrapf(err, "export: save %s", path)
	}
	return nil
}

// SummaryFilename derives a workbook name from a results filename.
func SummaryFilename(resultsFile string) string {
	return fmt.Sprintf("%s_validation.xlsx", trimExt(resultsFile))
}

func trimExt(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[:i]
		}
		if name[i] == '/' {
			break
		}
	}
	return name
}
