package model

// Meal is a named serving window within a single day, e.g. "lunch" from
// 11:00 to 15:00. Meal windows both label slots in capacity status queries
// and bound where reservations may be placed. The store performs no
// overlap validation between a canteen's meals; windows are taken as the
// admin provided them.
type Meal struct {
	Name string    `json:"meal"`
	From ClockTime `json:"from"`
	To   ClockTime `json:"to"`
}

// Canteen is a dining location with a fixed per-slot seat capacity and an
// ordered list of meal windows.
//
// Fields:
//  ID           – identifier assigned sequentially by the store.
//  Name         – unique among live canteens.
//  Location     – unique among live canteens.
//  Capacity     – maximum simultaneous occupants of a single slot.
//  WorkingHours – meal windows in the order the admin supplied them.
type Canteen struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Location     string `json:"location"`
	Capacity     int    `json:"capacity"`
	WorkingHours []Meal `json:"workingHours"`
}

// CanteenPatch is a sparse update: only non-nil fields overwrite the stored
// canteen. A nil pointer means "leave the field alone", which is distinct
// from setting it to a zero value. The JSON binding fills exactly the fields
// present in the request body.
type CanteenPatch struct {
	Name         *string `json:"name"`
	Location     *string `json:"location"`
	Capacity     *int    `json:"capacity"`
	WorkingHours *[]Meal `json:"workingHours"`
}

// SlotStatus is one row of a capacity status query: the remaining capacity
// of a single slot on a single date, labelled with the meal covering it.
type SlotStatus struct {
	Date              Date      `json:"date"`
	Meal              string    `json:"meal"`
	Start             ClockTime `json:"start"`
	RemainingCapacity int       `json:"remainingCapacity"`
}
