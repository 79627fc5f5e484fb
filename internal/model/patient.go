package model

import "time"

// Gender of a patient.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// Patient is a registered patient.
type Patient struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Age       int       `json:"age"`
	Gender    Gender    `json:"gender"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewPatient is the payload for registering a patient.
type NewPatient struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Age    int    `json:"age"`
	Gender Gender `json:"gender"`
}

// MedicalHistory is a patient together with their prescriptions.
type MedicalHistory struct {
	Patient       Patient        `json:"patient"`
	Prescriptions []Prescription `json:"prescriptions"`
}
