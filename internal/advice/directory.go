package advice

// Doctor is a specialist referral.
type Doctor struct {
	Name      string  `json:"name"`
	Specialty string  `json:"specialty"`
	Contact   string  `json:"contact"`
	Rating    float64 `json:"rating"`
}

// Hospital is a nearby emergency centre.
type Hospital struct {
	Name             string `json:"name"`
	Distance         string `json:"distance"`
	EmergencyContact string `json:"emergency_contact"`
	Address          string `json:"address"`
}

// Placeholder directory until a location-aware lookup exists.
var (
	doctors = []Doctor{
		{Name: "Dr. Sarah Smith", Specialty: "Neurologist", Contact: "+1-555-0123", Rating: 4.8},
		{Name: "Dr. James Johnson", Specialty: "Psychiatrist (ADHD/ASD)", Contact: "+1-555-0124", Rating: 4.9},
		{Name: "Dr. Emily Chen", Specialty: "Geriatric Specialist", Contact: "+1-555-0125", Rating: 4.7},
	}
	hospitals = []Hospital{
		{Name: "City General Hospital", Distance: "2.5 km", EmergencyContact: "911", Address: "123 Main St"},
		{Name: "Neuro Care Institute", Distance: "5.0 km", EmergencyContact: "+1-800-NEURO", Address: "456 Medical Dr"},
	}
)

// Doctors returns the specialist directory.
func Doctors() []Doctor {
	return append([]Doctor(nil), doctors...)
}

// Hospitals returns the emergency centre directory.
func Hospitals() []Hospital {
	return append([]Hospital(nil), hospitals...)
}
