// Package thermal holds the reference data the load calculators read: insulation
// U-factors and conductivities, product thermal properties, storage packing
// factors and unit conversion constants. Nothing in here computes loads.
package thermal

import (
	"sort"
	"strings"
)

const (
	// KWPerTR is the capacity of one ton of refrigeration in kW.
	KWPerTR = 3.517
	// BTUPerKW converts kW to BTU/hr.
	BTUPerKW = 3412.0
	// WPerTR is one ton of refrigeration in W (also used as kJ/hr per TR).
	WPerTR = 3517.0
	// KJPerKWDay is the energy of 1 kW sustained for 24 hours, in kJ/1000 (24 × 3.6).
	KJPerKWDay = 86.4
)

// Insulation is a wall panel core material.
type Insulation string

const (
	PUF      Insulation = "PUF"
	EPS      Insulation = "EPS"
	Rockwool Insulation = "Rockwool"
)

// ParseInsulation matches case-insensitively against the known materials.
func ParseInsulation(s string) (Insulation, bool) {
	for _, ins := range []Insulation{PUF, EPS, Rockwool} {
		if strings.EqualFold(strings.TrimSpace(s), string(ins)) {
			return ins, true
		}
	}
	return "", false
}

// StandardThicknesses are the panel thicknesses offered in mm.
var StandardThicknesses = []int{75, 100, 125, 150, 200}

// uFactors in W/m²K by material and thickness (mm).
var uFactors = map[Insulation]map[int]float64{
	PUF:      {75: 0.32, 100: 0.25, 125: 0.20, 150: 0.17, 200: 0.13},
	EPS:      {75: 0.45, 100: 0.35, 125: 0.28, 150: 0.23, 200: 0.18},
	Rockwool: {75: 0.50, 100: 0.38, 125: 0.30, 150: 0.25, 200: 0.20},
}

// UFactor looks up the tabulated U-factor. ok is false for a material or
// thickness outside the table.
func UFactor(ins Insulation, thicknessMM int) (float64, bool) {
	u, ok := uFactors[ins][thicknessMM]
	return u, ok
}

var conductivity = map[Insulation]float64{
	PUF:      0.023,
	EPS:      0.036,
	Rockwool: 0.040,
}

// Conductivity returns the thermal conductivity k of a material in W/mK.
func Conductivity(ins Insulation) (float64, bool) {
	k, ok := conductivity[ins]
	return k, ok
}

// Properties are the thermal properties of a stored product.
type Properties struct {
	SpecificHeatAbove float64 `json:"specific_heat_above"` // kJ/kg·K
	SpecificHeatBelow float64 `json:"specific_heat_below"` // kJ/kg·K
	LatentHeat        float64 `json:"latent_heat"`         // kJ/kg
	FreezingPoint     float64 `json:"freezing_point"`      // °C
	Density           float64 `json:"density"`             // kg/m³
	StorageEfficiency float64 `json:"storage_efficiency"`  // fraction
	RespirationRate   float64 `json:"respiration_rate"`    // W/tonne
}

// Table selects one of the product property tables. The calculators were tuned
// against different data sets, so each room category keeps its own.
type Table int

const (
	FreezerProducts Table = iota
	ColdRoomProducts
	BlastFreezerProducts
)

const (
	GeneralFood = "General Food Items"
	Banana      = "BANANA"
)

var products = map[Table]map[string]Properties{
	FreezerProducts: {
		"Beef":               {SpecificHeatAbove: 3.2, SpecificHeatBelow: 1.7, LatentHeat: 233, FreezingPoint: -1.8, Density: 1050, StorageEfficiency: 0.65},
		"Chicken":            {SpecificHeatAbove: 3.3, SpecificHeatBelow: 1.8, LatentHeat: 247, FreezingPoint: -2.8, Density: 950, StorageEfficiency: 0.60},
		"Pork":               {SpecificHeatAbove: 2.9, SpecificHeatBelow: 1.6, LatentHeat: 214, FreezingPoint: -2.2, Density: 1000, StorageEfficiency: 0.65},
		"Fish":               {SpecificHeatAbove: 3.6, SpecificHeatBelow: 1.9, LatentHeat: 235, FreezingPoint: -2.0, Density: 800, StorageEfficiency: 0.55},
		"Milk":               {SpecificHeatAbove: 3.9, SpecificHeatBelow: 2.1, LatentHeat: 270, FreezingPoint: -0.54, Density: 1030, StorageEfficiency: 0.80},
		"Cheese":             {SpecificHeatAbove: 2.8, SpecificHeatBelow: 1.4, LatentHeat: 120, FreezingPoint: -13.0, Density: 1100, StorageEfficiency: 0.70},
		"Ice Cream":          {SpecificHeatAbove: 3.5, SpecificHeatBelow: 2.0, LatentHeat: 250, FreezingPoint: -5.6, Density: 550, StorageEfficiency: 0.60},
		"Apples":             {SpecificHeatAbove: 3.8, SpecificHeatBelow: 1.9, LatentHeat: 281, FreezingPoint: -1.1, Density: 700, StorageEfficiency: 0.50},
		"Potatoes":           {SpecificHeatAbove: 3.4, SpecificHeatBelow: 1.8, LatentHeat: 267, FreezingPoint: -0.6, Density: 650, StorageEfficiency: 0.55},
		"Carrots":            {SpecificHeatAbove: 3.6, SpecificHeatBelow: 1.9, LatentHeat: 290, FreezingPoint: -1.4, Density: 600, StorageEfficiency: 0.50},
		"Tomatoes":           {SpecificHeatAbove: 4.0, SpecificHeatBelow: 2.0, LatentHeat: 316, FreezingPoint: -0.5, Density: 550, StorageEfficiency: 0.45},
		GeneralFood:          {SpecificHeatAbove: 3.0, SpecificHeatBelow: 1.6, LatentHeat: 200, FreezingPoint: -2.0, Density: 800, StorageEfficiency: 0.65},
		"Vegetables (Mixed)": {SpecificHeatAbove: 3.7, SpecificHeatBelow: 1.9, LatentHeat: 285, FreezingPoint: -1.0, Density: 600, StorageEfficiency: 0.55},
		"Fruits (Mixed)":     {SpecificHeatAbove: 3.6, SpecificHeatBelow: 1.9, LatentHeat: 280, FreezingPoint: -1.2, Density: 650, StorageEfficiency: 0.50},
		"Beverages":          {SpecificHeatAbove: 4.0, SpecificHeatBelow: 2.0, LatentHeat: 330, FreezingPoint: -2.0, Density: 1000, StorageEfficiency: 0.80},
		"Dairy Products":     {SpecificHeatAbove: 3.4, SpecificHeatBelow: 1.8, LatentHeat: 250, FreezingPoint: -1.5, Density: 1020, StorageEfficiency: 0.75},
		"Pharmaceutical":     {SpecificHeatAbove: 3.2, SpecificHeatBelow: 1.7, LatentHeat: 200, FreezingPoint: -2.0, Density: 800, StorageEfficiency: 0.70},
	},
	// Cold room goods never freeze, so latent heat is zero throughout.
	ColdRoomProducts: {
		Banana:               {SpecificHeatAbove: 4.1, SpecificHeatBelow: 2.1, FreezingPoint: -0.8, Density: 600, StorageEfficiency: 0.65, RespirationRate: 50},
		"Vegetables (Mixed)": {SpecificHeatAbove: 3.7, SpecificHeatBelow: 1.9, FreezingPoint: -1.0, Density: 600, StorageEfficiency: 0.55, RespirationRate: 24},
		"Fruits (Mixed)":     {SpecificHeatAbove: 3.6, SpecificHeatBelow: 1.9, FreezingPoint: -1.2, Density: 650, StorageEfficiency: 0.50, RespirationRate: 28},
		"Beverages":          {SpecificHeatAbove: 4.0, SpecificHeatBelow: 2.0, FreezingPoint: -2.0, Density: 1000, StorageEfficiency: 0.80},
		"Dairy Products":     {SpecificHeatAbove: 3.4, SpecificHeatBelow: 1.8, FreezingPoint: -1.5, Density: 1020, StorageEfficiency: 0.75},
		"Pharmaceutical":     {SpecificHeatAbove: 3.2, SpecificHeatBelow: 1.7, FreezingPoint: -2.0, Density: 800, StorageEfficiency: 0.70},
		GeneralFood:          {SpecificHeatAbove: 3.0, SpecificHeatBelow: 1.6, FreezingPoint: -2.0, Density: 800, StorageEfficiency: 0.65},
	},
	BlastFreezerProducts: {
		"Chicken":   {SpecificHeatAbove: 3.49, SpecificHeatBelow: 2.14, LatentHeat: 233, FreezingPoint: -1.7, Density: 950, StorageEfficiency: 0.60},
		"Beef":      {SpecificHeatAbove: 3.2, SpecificHeatBelow: 1.7, LatentHeat: 233, FreezingPoint: -1.8, Density: 1050, StorageEfficiency: 0.65},
		"Pork":      {SpecificHeatAbove: 2.9, SpecificHeatBelow: 1.6, LatentHeat: 214, FreezingPoint: -2.2, Density: 1000, StorageEfficiency: 0.65},
		"Fish":      {SpecificHeatAbove: 3.6, SpecificHeatBelow: 1.9, LatentHeat: 235, FreezingPoint: -2.0, Density: 800, StorageEfficiency: 0.55},
		"Ice Cream": {SpecificHeatAbove: 3.5, SpecificHeatBelow: 2.0, LatentHeat: 250, FreezingPoint: -5.6, Density: 550, StorageEfficiency: 0.60},
		GeneralFood: {SpecificHeatAbove: 3.0, SpecificHeatBelow: 1.6, LatentHeat: 200, FreezingPoint: -2.0, Density: 800, StorageEfficiency: 0.65},
	},
}

// Product returns the properties of name in table.
func Product(table Table, name string) (Properties, bool) {
	p, ok := products[table][name]
	return p, ok
}

// ProductNames lists the products of a table, sorted.
func ProductNames(table Table) []string {
	names := make([]string, 0, len(products[table]))
	for name := range products[table] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var storageFactors = map[string]float64{
	"Loose":      0.45,
	"Boxed":      0.65,
	"Palletized": 0.75,
	"Bulk":       0.50,
	"Racked":     0.70,
}

// StorageFactor is the packing efficiency of a storage arrangement.
func StorageFactor(name string) (float64, bool) {
	f, ok := storageFactors[name]
	return f, ok
}
