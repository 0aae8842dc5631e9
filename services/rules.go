package services

import (
	"fmt"
	"strings"

	"shipops-app/models"
)

// Violation satu pelanggaran aturan tahap, dikirim apa adanya ke frontend
type Violation struct {
	Field string `json:"field"`
	Value int    `json:"value"`
	Max   int    `json:"max"`
	Msg   string `json:"msg"`
}

type ViolationError struct {
	Message    string
	Violations []Violation
}

func (e *ViolationError) Error() string {
	fields := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		fields = append(fields, v.Field)
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(fields, ", "))
}

type category struct {
	name string
	get  func(models.Counts) int
}

var categories = []category{
	{"empty_20dc", func(c models.Counts) int { return c.Empty20DC }},
	{"empty_40hc", func(c models.Counts) int { return c.Empty40HC }},
	{"full_20dc", func(c models.Counts) int { return c.Full20DC }},
	{"full_40hc", func(c models.Counts) int { return c.Full40HC }},
}

// CheckAccAgainstPengajuan: ACC per kategori tidak boleh melebihi pengajuan
func CheckAccAgainstPengajuan(acc, pengajuan models.Counts) []Violation {
	var out []Violation
	for _, c := range categories {
		value, limit := c.get(acc), c.get(pengajuan)
		if value > limit {
			out = append(out, Violation{
				Field: "acc_pengajuan_" + c.name,
				Value: value,
				Max:   limit,
				Msg:   fmt.Sprintf("ACC %s (%d) melebihi pengajuan (%d)", c.name, value, limit),
			})
		}
	}
	return out
}

// CheckHandledAgainstAcc: realisasi + shipside yes + shipside no per kategori
// tidak boleh melebihi ACC. mxd dibandingkan dengan empty, fxd dengan full.
func CheckHandledAgainstAcc(handled, acc models.Counts) []Violation {
	var out []Violation
	for _, c := range categories {
		value, limit := c.get(handled), c.get(acc)
		if value > limit {
			out = append(out, Violation{
				Field: "realisasi_shipside_" + handledName(c.name),
				Value: value,
				Max:   limit,
				Msg:   fmt.Sprintf("Realisasi + shipside %s (%d) melebihi ACC pengajuan (%d)", handledName(c.name), value, limit),
			})
		}
	}
	return out
}

func handledName(categoryName string) string {
	switch categoryName {
	case "empty_20dc":
		return "mxd_20dc"
	case "empty_40hc":
		return "mxd_40hc"
	case "full_20dc":
		return "fxd_20dc"
	default:
		return "fxd_40hc"
	}
}
