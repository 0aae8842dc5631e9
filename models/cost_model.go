package models

import (
	"shipops-app/master/port"
	"shipops-app/types"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

func init() {
	// tarif dikirim ke frontend sebagai angka, bukan string
	decimal.MarshalJSONWithoutQuotes = true
}

// CostRate tarif flat per port. mt = empty, fl = full
type CostRate struct {
	ID     uint       `json:"id" gorm:"primaryKey"`
	PortID uint       `json:"port_id" gorm:"not null;uniqueIndex"`
	Port   *port.Port `json:"port,omitempty" gorm:"constraint:OnDelete:CASCADE"`

	TdkTL20MT decimal.Decimal `json:"tdk_tl_20mt" gorm:"type:decimal(20,2);not null;default:0"`
	TdkTL40MT decimal.Decimal `json:"tdk_tl_40mt" gorm:"type:decimal(20,2);not null;default:0"`
	TdkTL20FL decimal.Decimal `json:"tdk_tl_20fl" gorm:"type:decimal(20,2);not null;default:0"`
	TdkTL40FL decimal.Decimal `json:"tdk_tl_40fl" gorm:"type:decimal(20,2);not null;default:0"`

	TL20MT decimal.Decimal `json:"tl_20mt" gorm:"type:decimal(20,2);not null;default:0"`
	TL40MT decimal.Decimal `json:"tl_40mt" gorm:"type:decimal(20,2);not null;default:0"`
	TL20FL decimal.Decimal `json:"tl_20fl" gorm:"type:decimal(20,2);not null;default:0"`
	TL40FL decimal.Decimal `json:"tl_40fl" gorm:"type:decimal(20,2);not null;default:0"`

	ShipsideYes20MT decimal.Decimal `json:"shipside_yes_20mt" gorm:"type:decimal(20,2);not null;default:0"`
	ShipsideYes40MT decimal.Decimal `json:"shipside_yes_40mt" gorm:"type:decimal(20,2);not null;default:0"`
	ShipsideYes20FL decimal.Decimal `json:"shipside_yes_20fl" gorm:"type:decimal(20,2);not null;default:0"`
	ShipsideYes40FL decimal.Decimal `json:"shipside_yes_40fl" gorm:"type:decimal(20,2);not null;default:0"`

	ShipsideNo20MT decimal.Decimal `json:"shipside_no_20mt" gorm:"type:decimal(20,2);not null;default:0"`
	ShipsideNo40MT decimal.Decimal `json:"shipside_no_40mt" gorm:"type:decimal(20,2);not null;default:0"`
	ShipsideNo20FL decimal.Decimal `json:"shipside_no_20fl" gorm:"type:decimal(20,2);not null;default:0"`
	ShipsideNo40FL decimal.Decimal `json:"shipside_no_40fl" gorm:"type:decimal(20,2);not null;default:0"`

	TurunCY20MT decimal.Decimal `json:"turun_cy_20mt" gorm:"type:decimal(20,2);not null;default:0"`
	TurunCY40MT decimal.Decimal `json:"turun_cy_40mt" gorm:"type:decimal(20,2);not null;default:0"`
	TurunCY20FL decimal.Decimal `json:"turun_cy_20fl" gorm:"type:decimal(20,2);not null;default:0"`
	TurunCY40FL decimal.Decimal `json:"turun_cy_40fl" gorm:"type:decimal(20,2);not null;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RateSet tarif satu kategori untuk tiap outcome
type RateSet struct {
	TdkTL       decimal.Decimal
	TL          decimal.Decimal
	ShipsideYes decimal.Decimal
	ShipsideNo  decimal.Decimal
	TurunCY     decimal.Decimal
}

// Rates mengembalikan tarif per kategori dengan urutan yang sama dengan Counts
func (r *CostRate) Rates() (empty20, empty40, full20, full40 RateSet) {
	empty20 = RateSet{r.TdkTL20MT, r.TL20MT, r.ShipsideYes20MT, r.ShipsideNo20MT, r.TurunCY20MT}
	empty40 = RateSet{r.TdkTL40MT, r.TL40MT, r.ShipsideYes40MT, r.ShipsideNo40MT, r.TurunCY40MT}
	full20 = RateSet{r.TdkTL20FL, r.TL20FL, r.ShipsideYes20FL, r.ShipsideNo20FL, r.TurunCY20FL}
	full40 = RateSet{r.TdkTL40FL, r.TL40FL, r.ShipsideYes40FL, r.ShipsideNo40FL, r.TurunCY40FL}
	return
}

// CostRateInput semua tarif opsional, nil berarti tidak diubah
type CostRateInput struct {
	PortID *uint `json:"port_id"`

	TdkTL20MT *decimal.Decimal `json:"tdk_tl_20mt"`
	TdkTL40MT *decimal.Decimal `json:"tdk_tl_40mt"`
	TdkTL20FL *decimal.Decimal `json:"tdk_tl_20fl"`
	TdkTL40FL *decimal.Decimal `json:"tdk_tl_40fl"`

	TL20MT *decimal.Decimal `json:"tl_20mt"`
	TL40MT *decimal.Decimal `json:"tl_40mt"`
	TL20FL *decimal.Decimal `json:"tl_20fl"`
	TL40FL *decimal.Decimal `json:"tl_40fl"`

	ShipsideYes20MT *decimal.Decimal `json:"shipside_yes_20mt"`
	ShipsideYes40MT *decimal.Decimal `json:"shipside_yes_40mt"`
	ShipsideYes20FL *decimal.Decimal `json:"shipside_yes_20fl"`
	ShipsideYes40FL *decimal.Decimal `json:"shipside_yes_40fl"`

	ShipsideNo20MT *decimal.Decimal `json:"shipside_no_20mt"`
	ShipsideNo40MT *decimal.Decimal `json:"shipside_no_40mt"`
	ShipsideNo20FL *decimal.Decimal `json:"shipside_no_20fl"`
	ShipsideNo40FL *decimal.Decimal `json:"shipside_no_40fl"`

	TurunCY20MT *decimal.Decimal `json:"turun_cy_20mt"`
	TurunCY40MT *decimal.Decimal `json:"turun_cy_40mt"`
	TurunCY20FL *decimal.Decimal `json:"turun_cy_20fl"`
	TurunCY40FL *decimal.Decimal `json:"turun_cy_40fl"`
}

// Apply menyalin field yang dikirim ke CostRate
func (in *CostRateInput) Apply(r *CostRate) {
	set := func(dst *decimal.Decimal, src *decimal.Decimal) {
		if src != nil {
			*dst = *src
		}
	}
	set(&r.TdkTL20MT, in.TdkTL20MT)
	set(&r.TdkTL40MT, in.TdkTL40MT)
	set(&r.TdkTL20FL, in.TdkTL20FL)
	set(&r.TdkTL40FL, in.TdkTL40FL)
	set(&r.TL20MT, in.TL20MT)
	set(&r.TL40MT, in.TL40MT)
	set(&r.TL20FL, in.TL20FL)
	set(&r.TL40FL, in.TL40FL)
	set(&r.ShipsideYes20MT, in.ShipsideYes20MT)
	set(&r.ShipsideYes40MT, in.ShipsideYes40MT)
	set(&r.ShipsideYes20FL, in.ShipsideYes20FL)
	set(&r.ShipsideYes40FL, in.ShipsideYes40FL)
	set(&r.ShipsideNo20MT, in.ShipsideNo20MT)
	set(&r.ShipsideNo40MT, in.ShipsideNo40MT)
	set(&r.ShipsideNo20FL, in.ShipsideNo20FL)
	set(&r.ShipsideNo40FL, in.ShipsideNo40FL)
	set(&r.TurunCY20MT, in.TurunCY20MT)
	set(&r.TurunCY40MT, in.TurunCY40MT)
	set(&r.TurunCY20FL, in.TurunCY20FL)
	set(&r.TurunCY40FL, in.TurunCY40FL)
}

// Negatives mengembalikan nama field tarif yang bernilai negatif
func (in *CostRateInput) Negatives() []string {
	fields := map[string]*decimal.Decimal{
		"tdk_tl_20mt": in.TdkTL20MT, "tdk_tl_40mt": in.TdkTL40MT, "tdk_tl_20fl": in.TdkTL20FL, "tdk_tl_40fl": in.TdkTL40FL,
		"tl_20mt": in.TL20MT, "tl_40mt": in.TL40MT, "tl_20fl": in.TL20FL, "tl_40fl": in.TL40FL,
		"shipside_yes_20mt": in.ShipsideYes20MT, "shipside_yes_40mt": in.ShipsideYes40MT, "shipside_yes_20fl": in.ShipsideYes20FL, "shipside_yes_40fl": in.ShipsideYes40FL,
		"shipside_no_20mt": in.ShipsideNo20MT, "shipside_no_40mt": in.ShipsideNo40MT, "shipside_no_20fl": in.ShipsideNo20FL, "shipside_no_40fl": in.ShipsideNo40FL,
		"turun_cy_20mt": in.TurunCY20MT, "turun_cy_40mt": in.TurunCY40MT, "turun_cy_20fl": in.TurunCY20FL, "turun_cy_40fl": in.TurunCY40FL,
	}
	var out []string
	for name, v := range fields {
		if v != nil && v.IsNegative() {
			out = append(out, name)
		}
	}
	return out
}

// VoyageCostEstimation hasil perhitungan biaya terakhir per voyage
type VoyageCostEstimation struct {
	ID              types.SnowflakeID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	VoyageID        uint              `json:"voyage_id" gorm:"not null;uniqueIndex"`
	Voyage          *Voyage           `json:"voyage,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	EstimationCost1 decimal.Decimal   `json:"estimation_cost1" gorm:"type:decimal(20,2);not null;default:0"`
	EstimationCost2 decimal.Decimal   `json:"estimation_cost2" gorm:"type:decimal(20,2);not null;default:0"`
	FinalCost       decimal.Decimal   `json:"final_cost" gorm:"type:decimal(20,2);not null;default:0"`
	Breakdown       datatypes.JSONMap `json:"breakdown"`
	ComputedAt      time.Time         `json:"computed_at"`
}
