package entity

// Match is the confirmed pairing produced by the matching service. The
// booking service only reads it to seed a booking.
type Match struct {
	ID      int64  `json:"id"`
	User1ID int64  `json:"user_1_id"`
	User2ID int64  `json:"user_2_id"`
	Status  string `json:"status"`
}
