package models

import "time"

// Order is a committed cart. Items, Total, Payment and Time never change
// after checkout; Canceled is the single flag that may flip, and only from
// false to true.
type Order struct {
	ID       int64         `bson:"id" json:"id"`
	Time     time.Time     `bson:"time" json:"time"`
	Items    []CartLine    `bson:"items" json:"items"`
	Total    Money         `bson:"total" json:"total"`
	Payment  PaymentMethod `bson:"payment" json:"payment"`
	Paid     bool          `bson:"paid" json:"paid"`
	Canceled bool          `bson:"canceled" json:"canceled"`
}
