package models

// Profile holds the job-seeker's personal details. All fields are required
// before submission; the client checks presence only and leaves everything
// else to the remote service.
type Profile struct {
	Name              string `json:"name" validate:"required"`
	Age               string `json:"age" validate:"required"`
	Education         string `json:"education" validate:"required"`
	Course            string `json:"course" validate:"required"`
	State             string `json:"state" validate:"required"`
	PreferredLocation string `json:"preferredLocation" validate:"required"`
}

// Work location preferences, as offered by the remote service.
const (
	LocationSameDistrict = "Same District"
	LocationSameState    = "Same State"
	LocationAnywhere     = "Anywhere in India"
)

// WorkLocationOptions lists the valid preferred work locations.
var WorkLocationOptions = []string{
	LocationSameDistrict,
	LocationSameState,
	LocationAnywhere,
}

// EducationLevels lists the education levels the remote service understands.
var EducationLevels = []string{
	"Diploma",
	"Btech",
	"Btech/CSE/IT",
	"Btech/ECE/EEE",
	"Btech/Mech/Civil",
	"Bcom/MBA",
	"Bpharamcy",
	"Post Graduation",
}

// States lists the selectable states.
var States = []string{
	"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh",
	"Goa", "Gujarat", "Haryana", "Himachal Pradesh", "Jharkhand", "Karnataka",
	"Kerala", "Madhya Pradesh", "Maharashtra", "Manipur", "Meghalaya",
	"Mizoram", "Nagaland", "Odisha", "Punjab", "Rajasthan", "Sikkim",
	"Tamil Nadu", "Telangana", "Tripura", "Uttar Pradesh", "Uttarakhand",
	"West Bengal",
}

// User identifies the account holder as returned by login/registration.
type User struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
