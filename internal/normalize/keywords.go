package normalize

import (
	"encoding/json"
	"fmt"
	"os"
)

// Keywords holds the classification vocabularies used by the normalizer.
// The tables are configuration data: the compiled-in defaults cover Turkish
// and English place names, and LoadKeywords reads a JSON override for other
// locales.
type Keywords struct {
	Hospital        []string        `json:"hospital"`
	Clinic          []string        `json:"clinic"`
	PrivatePractice []string        `json:"private_practice"`
	Honorifics      []string        `json:"honorifics"`
	DoctorPrefixes  []string        `json:"doctor_prefixes"`
	DoctorTerms     []string        `json:"doctor_terms"`
	ChildTerms      []string        `json:"child_terms"`
	Specialties     []SpecialtyRule `json:"specialties"`
	HospitalTypes   []LabelRule     `json:"hospital_types"`
}

// SpecialtyRule maps name substrings to a specialty tag. Rules are ordered;
// the first match wins.
type SpecialtyRule struct {
	Terms     []string `json:"terms"`
	Specialty string   `json:"specialty"`
}

// LabelRule maps name substrings to a hospital-type label.
type LabelRule struct {
	Terms []string `json:"terms"`
	Label string   `json:"label"`
}

// DefaultKeywords returns the built-in vocabulary.
func DefaultKeywords() *Keywords {
	return &Keywords{
		Hospital: []string{
			"hastane", "hastanesi", "hospital", "tıp merkezi",
			"sağlık merkezi", "üniversite", "devlet hastanesi",
		},
		Clinic: []string{
			"klinik", "kliniği", "clinic", "poliklinik",
		},
		// Longest first so compound keywords are removed before their stems.
		PrivatePractice: []string{
			"özel muayenehane", "muayenehanesi", "muayenehane",
		},
		Honorifics: []string{
			"Prof. Dr.", "Doç. Dr.", "Uzm. Dr.", "Dr.",
		},
		DoctorPrefixes: []string{
			"dr.", "dr ",
		},
		DoctorTerms: []string{
			"doktor", "doctor",
		},
		ChildTerms: []string{
			"çocuk", "pediatri", "bebek", "child", "pediatric", "kids", "baby",
		},
		Specialties: []SpecialtyRule{
			{Terms: []string{"göz", "oftalmoloji", "eye", "ophthalmolog"}, Specialty: "pediatric ophthalmology"},
			{Terms: []string{"kalp", "kardiyoloji", "heart", "cardiolog"}, Specialty: "pediatric cardiology"},
			{Terms: []string{"endokrin", "endocrin"}, Specialty: "pediatric endocrinology"},
			{Terms: []string{"nöroloji", "sinir", "neurolog", "nerve"}, Specialty: "pediatric neurology"},
			{Terms: []string{"gastro", "sindirim", "digestive"}, Specialty: "pediatric gastroenterology"},
			{Terms: []string{"hematoloji", "kan hastalıkları", "hematolog", "blood"}, Specialty: "pediatric hematology"},
			{Terms: []string{"cerrahi", "surgery", "surgeon"}, Specialty: "pediatric surgery"},
			{Terms: []string{"alerji", "allergy", "immünoloji", "immunolog"}, Specialty: "pediatric allergy/immunology"},
			{Terms: []string{"çocuk", "pediatri", "bebek", "child", "pediatric", "baby"}, Specialty: "general pediatrics"},
		},
		HospitalTypes: []LabelRule{
			{Terms: []string{"üniversite", "university"}, Label: "general & research hospital"},
			{Terms: []string{"devlet", "state"}, Label: "state hospital"},
			{Terms: []string{"özel", "private"}, Label: "private hospital"},
			{Terms: []string{"eğitim", "training", "araştırma", "research"}, Label: "training & research hospital"},
		},
	}
}

// LoadKeywords reads a keyword table from a JSON file.
func LoadKeywords(path string) (*Keywords, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keywords file: %w", err)
	}

	var kw Keywords
	if err := json.Unmarshal(data, &kw); err != nil {
		return nil, fmt.Errorf("failed to parse keywords file: %w", err)
	}
	return &kw, nil
}
