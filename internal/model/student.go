package model

// Student represents a registered student account. The identity supplied by
// the boundary layer (the studentId header) refers to this record; there is
// no authentication beyond that, the caller-provided id is trusted as given.
//
// Fields:
//  ID      – identifier assigned sequentially by the store.
//  Name    – display name.
//  Email   – unique email address.
//  IsAdmin – grants canteen mutation rights and the right to cancel any
//            reservation. Immutable after creation.
type Student struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}
