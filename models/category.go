package models

// ActivityCategory enumerates the activity categories the farm offers.
// The tag, color and level tables below are the single source of truth for
// category presentation; both the calendar aggregation and the public
// activity views read from here.
type ActivityCategory string

const (
	CategoryFamily      ActivityCategory = "family"
	CategoryVisit       ActivityCategory = "visit"
	CategoryEducational ActivityCategory = "educational"
	CategoryWorkshop    ActivityCategory = "workshop"
	CategoryHarvest     ActivityCategory = "harvest"
	CategoryTasting     ActivityCategory = "tasting"
	CategorySeasonal    ActivityCategory = "seasonal"
)

// Categories lists every known category.
var Categories = []ActivityCategory{
	CategoryFamily,
	CategoryVisit,
	CategoryEducational,
	CategoryWorkshop,
	CategoryHarvest,
	CategoryTasting,
	CategorySeasonal,
}

// Known reports whether c is one of the enumerated categories.
func (c ActivityCategory) Known() bool {
	switch c {
	case CategoryFamily, CategoryVisit, CategoryEducational, CategoryWorkshop,
		CategoryHarvest, CategoryTasting, CategorySeasonal:
		return true
	}
	return false
}

// Tag returns the locale-neutral calendar tag for the category. Unknown
// categories fall back to "activity".
func (c ActivityCategory) Tag() string {
	switch c {
	case CategoryHarvest:
		return "cosecha"
	case CategoryWorkshop:
		return "taller"
	case CategoryVisit:
		return "visita"
	case CategoryTasting:
		return "degustacion"
	case CategoryEducational:
		return "educacion"
	case CategoryFamily:
		return "familial"
	case CategorySeasonal:
		return "estacional"
	}
	return "activity"
}

// Color returns the display color used on the calendar for the category.
// Unknown categories fall back to gray.
func (c ActivityCategory) Color() string {
	switch c {
	case CategoryHarvest:
		return "#10b981"
	case CategoryWorkshop:
		return "#f59e0b"
	case CategoryVisit:
		return "#3b82f6"
	case CategoryTasting:
		return "#8b5cf6"
	case CategoryEducational:
		return "#ec4899"
	case CategoryFamily:
		return "#f97316"
	case CategorySeasonal:
		return "#06b6d4"
	}
	return "#6b7280"
}

// Level returns the bilingual difficulty label shown on activity cards.
func (c ActivityCategory) Level() Bilingual {
	switch c {
	case CategoryFamily, CategorySeasonal:
		return Bilingual{Ar: "عائلي", Fr: "Familial"}
	case CategoryEducational, CategoryHarvest:
		return Bilingual{Ar: "متوسط", Fr: "Moyen"}
	case CategoryWorkshop:
		return Bilingual{Ar: "متقدم", Fr: "Avancé"}
	}
	return Bilingual{Ar: "جميع الأعمار", Fr: "Tous âges"}
}
