package entity

// Doctor is a consultable doctor. Fee is in minor currency units and is the
// value snapshotted into consultations booked against this doctor.
type Doctor struct {
	Base
	Name           string `db:"name"`
	Specialization string `db:"specialization"`
	Email          string `db:"email"`
	Phone          string `db:"phone"`
	Fee            int64  `db:"fee"`
	ImageURL       string `db:"image_url"`
}
