package normalize

import (
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/bebektakip/carefinder/internal/domain/entities"
	"github.com/bebektakip/carefinder/internal/domain/providers"
)

// Placeholder values used when upstream records omit a field.
const (
	GenericDoctorName  = "Çocuk Doktoru"
	DefaultSpecialty   = "general pediatrics"
	DefaultHospitalTag = "general hospital"
	AddressUnknown     = "Adres bilgisi yok"
	PhoneUnknown       = "Telefon bilgisi yok"
)

// Normalizer converts raw place records into CareProvider entities. It is a
// pure transform: records it cannot use yield no output, never an error.
type Normalizer struct {
	kw *Keywords
}

// New creates a normalizer; a nil keyword table selects the defaults.
func New(kw *Keywords) *Normalizer {
	if kw == nil {
		kw = DefaultKeywords()
	}
	return &Normalizer{kw: kw}
}

// Normalize produces zero or one CareProvider from a raw record. Records
// without coordinates are dropped.
func (n *Normalizer) Normalize(rec providers.PlaceRecord, kind entities.ProviderKind) *entities.CareProvider {
	if rec.Latitude == nil || rec.Longitude == nil {
		return nil
	}

	id := rec.PlaceID
	if id == "" {
		id = uuid.NewString()
	}

	address := strings.TrimSpace(rec.FormattedAddress)
	if address == "" {
		address = AddressUnknown
	}
	phone := strings.TrimSpace(rec.PhoneNumber)
	if phone == "" {
		phone = PhoneUnknown
	}

	provider := &entities.CareProvider{
		ID:      id,
		Kind:    kind,
		Address: address,
		Phone:   phone,
		Location: entities.Location{
			Latitude:  *rec.Latitude,
			Longitude: *rec.Longitude,
		},
		WorkingHours:        ParseWeeklyHours(rec.WeekdayDescriptions),
		AcceptsAppointments: true,
	}

	if rec.Rating != nil && *rec.Rating >= 0 && *rec.Rating <= 5 {
		rating := *rec.Rating
		provider.Rating = &rating
	}
	if rec.ReviewCount != nil && *rec.ReviewCount >= 0 {
		count := *rec.ReviewCount
		provider.ReviewCount = &count
	}

	switch kind {
	case entities.ProviderKindHospital:
		provider.DisplayName = strings.TrimSpace(rec.DisplayName)
		provider.Affiliation = provider.DisplayName
		provider.Specialty = n.classifyHospitalType(rec.DisplayName)
	default:
		name, affiliation := n.splitDoctorName(rec.DisplayName)
		provider.DisplayName = name
		provider.Affiliation = affiliation
		provider.Title = n.classifyTitle(rec.DisplayName, name)
		provider.Specialty = n.classifySpecialty(rec.DisplayName)
	}

	return provider
}

// splitDoctorName extracts a personal name and an institution name from a raw
// display name. The heuristic is best-effort; when no personal name can be
// isolated the generic label is used and the full string becomes the
// institution.
func (n *Normalizer) splitDoctorName(raw string) (name, affiliation string) {
	raw = strings.TrimSpace(raw)

	if n.containsAny(raw, n.kw.Hospital) || n.containsAny(raw, n.kw.Clinic) {
		if n.hasDoctorPrefix(raw) && !strings.Contains(raw, "-") {
			return GenericDoctorName, raw
		}
		if strings.Contains(raw, "-") {
			left, right, _ := strings.Cut(raw, "-")
			left = strings.TrimSpace(left)
			right = strings.TrimSpace(right)
			if n.containsAny(left, n.kw.Hospital) || n.containsAny(left, n.kw.Clinic) {
				return GenericDoctorName, raw
			}
			stripped := n.stripHonorifics(left)
			if runeLen(stripped) < 3 || stripped == left {
				return GenericDoctorName, right
			}
			return stripped, right
		}
		return GenericDoctorName, raw
	}

	if n.containsAny(raw, n.kw.PrivatePractice) {
		cleaned := raw
		for _, kw := range n.kw.PrivatePractice {
			cleaned = removeAllFold(cleaned, kw)
		}
		cleaned = n.stripHonorifics(cleaned)
		if runeLen(cleaned) >= 3 {
			return cleaned, raw
		}
		return GenericDoctorName, raw
	}

	if n.hasDoctorPrefix(raw) || n.containsAny(raw, n.kw.DoctorTerms) {
		if strings.Contains(raw, "-") {
			left, right, _ := strings.Cut(raw, "-")
			stripped := n.stripHonorifics(strings.TrimSpace(left))
			if runeLen(stripped) >= 3 {
				return stripped, strings.TrimSpace(right)
			}
		}
		stripped := n.stripHonorifics(raw)
		if runeLen(stripped) >= 3 {
			return stripped, raw
		}
	}

	return GenericDoctorName, raw
}

// classifyTitle picks a professional title from the raw name. A generic
// provider name carries no title.
func (n *Normalizer) classifyTitle(raw, name string) string {
	if name == GenericDoctorName {
		return ""
	}

	switch {
	case containsFold(raw, "prof.") || containsFold(raw, "profesör"):
		return "Prof. Dr."
	case containsFold(raw, "doç."):
		return "Doç. Dr."
	case containsFold(raw, "uzm.") || containsFold(raw, "uzman"):
		return "Uzm. Dr."
	default:
		return "Dr."
	}
}

// classifySpecialty matches the raw name against the ordered specialty table.
func (n *Normalizer) classifySpecialty(raw string) string {
	for _, rule := range n.kw.Specialties {
		for _, term := range rule.Terms {
			if containsFold(raw, term) {
				return rule.Specialty
			}
		}
	}
	return DefaultSpecialty
}

// classifyHospitalType matches the raw name against the hospital-type table.
func (n *Normalizer) classifyHospitalType(raw string) string {
	for _, rule := range n.kw.HospitalTypes {
		for _, term := range rule.Terms {
			if containsFold(raw, term) {
				return rule.Label
			}
		}
	}
	return DefaultHospitalTag
}

// ContainsChildTerm reports whether the text already references children or
// pediatrics.
func (n *Normalizer) ContainsChildTerm(text string) bool {
	return n.containsAny(text, n.kw.ChildTerms)
}

func (n *Normalizer) hasDoctorPrefix(raw string) bool {
	lower := lowerTR(raw)
	for _, prefix := range n.kw.DoctorPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

func (n *Normalizer) containsAny(raw string, keywords []string) bool {
	for _, kw := range keywords {
		if containsFold(raw, kw) {
			return true
		}
	}
	return false
}

func (n *Normalizer) stripHonorifics(s string) string {
	for _, title := range n.kw.Honorifics {
		s = removeAllFold(s, title)
	}
	return strings.TrimSpace(s)
}

// lowerTR lowercases rune by rune with Turkish casing (I→ı, İ→i) so keyword
// matching works on Turkish place names. Rune-wise mapping keeps indices
// aligned with the original string.
func lowerTR(s string) string {
	return strings.Map(func(r rune) rune {
		return unicode.TurkishCase.ToLower(r)
	}, s)
}

func containsFold(s, substr string) bool {
	return strings.Contains(lowerTR(s), lowerTR(substr))
}

// removeAllFold removes every case-insensitive occurrence of kw from s,
// preserving the casing of the remainder.
func removeAllFold(s, kw string) string {
	runes := []rune(s)
	lower := []rune(lowerTR(s))
	target := []rune(lowerTR(kw))
	if len(target) == 0 {
		return s
	}

	var out []rune
	for i := 0; i < len(runes); {
		if matchAt(lower, target, i) {
			i += len(target)
			continue
		}
		out = append(out, runes[i])
		i++
	}
	return strings.TrimSpace(string(out))
}

func matchAt(haystack, needle []rune, pos int) bool {
	if pos+len(needle) > len(haystack) {
		return false
	}
	for i, r := range needle {
		if haystack[pos+i] != r {
			return false
		}
	}
	return true
}

func runeLen(s string) int {
	return len([]rune(s))
}
