package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bebektakip/carefinder/internal/domain/entities"
	"github.com/bebektakip/carefinder/internal/domain/providers"
)

func record(name string) providers.PlaceRecord {
	lat, lon := 41.0082, 28.9784
	return providers.PlaceRecord{
		PlaceID:          "place-1",
		DisplayName:      name,
		FormattedAddress: "Bağdat Cad. No:12, Kadıköy",
		PhoneNumber:      "+90 216 555 01 01",
		Latitude:         &lat,
		Longitude:        &lon,
	}
}

func TestNormalize_DoctorNameSplitting(t *testing.T) {
	n := New(nil)

	tests := []struct {
		raw         string
		name        string
		affiliation string
		title       string
	}{
		{
			raw:         "Dr. Ayşe Yılmaz - Acıbadem Hastanesi",
			name:        "Ayşe Yılmaz",
			affiliation: "Acıbadem Hastanesi",
			title:       "Dr.",
		},
		{
			raw:         "Dr. ÖZEL İLGİ ÇOCUK TIP MERKEZİ",
			name:        GenericDoctorName,
			affiliation: "Dr. ÖZEL İLGİ ÇOCUK TIP MERKEZİ",
			title:       "",
		},
		{
			raw:         "Prof. Dr. Mehmet Demir Muayenehanesi",
			name:        "Mehmet Demir",
			affiliation: "Prof. Dr. Mehmet Demir Muayenehanesi",
			title:       "Prof. Dr.",
		},
		{
			raw:         "Uzm. Dr. Elif Kaya - Çocuk Kardiyoloji Kliniği",
			name:        "Elif Kaya",
			affiliation: "Çocuk Kardiyoloji Kliniği",
			title:       "Uzm. Dr.",
		},
		{
			raw:         "Özel Anadolu Kliniği",
			name:        GenericDoctorName,
			affiliation: "Özel Anadolu Kliniği",
			title:       "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			provider := n.Normalize(record(tt.raw), entities.ProviderKindDoctor)
			require.NotNil(t, provider)
			assert.Equal(t, tt.name, provider.DisplayName)
			assert.Equal(t, tt.affiliation, provider.Affiliation)
			assert.Equal(t, tt.title, provider.Title)
		})
	}
}

func TestNormalize_SpecialtyClassification(t *testing.T) {
	n := New(nil)

	tests := []struct {
		raw       string
		specialty string
	}{
		{"Dr. Ali Vural Göz Kliniği", "pediatric ophthalmology"},
		{"Uzm. Dr. Elif Kaya - Çocuk Kardiyoloji Kliniği", "pediatric cardiology"},
		{"Çocuk Doktoru Ahmet Öz", "general pediatrics"},
		{"Dr. Zeynep Aydın", "general pediatrics"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			provider := n.Normalize(record(tt.raw), entities.ProviderKindDoctor)
			require.NotNil(t, provider)
			assert.Equal(t, tt.specialty, provider.Specialty)
		})
	}
}

func TestNormalize_HospitalTypeClassification(t *testing.T) {
	n := New(nil)

	tests := []struct {
		raw   string
		label string
	}{
		{"İstanbul Üniversitesi Çocuk Hastanesi", "general & research hospital"},
		{"Kartal Devlet Hastanesi", "state hospital"},
		{"Özel Anadolu Çocuk Hastanesi", "private hospital"},
		{"Zeynep Kamil Kadın ve Çocuk Hastanesi", "general hospital"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			provider := n.Normalize(record(tt.raw), entities.ProviderKindHospital)
			require.NotNil(t, provider)
			assert.Equal(t, tt.raw, provider.DisplayName)
			assert.Equal(t, tt.raw, provider.Affiliation)
			assert.Equal(t, tt.label, provider.Specialty)
		})
	}
}

func TestNormalize_DropsRecordsWithoutCoordinates(t *testing.T) {
	n := New(nil)

	rec := record("Dr. Ayşe Yılmaz")
	rec.Latitude = nil

	assert.Nil(t, n.Normalize(rec, entities.ProviderKindDoctor))
}

func TestNormalize_PlaceholdersForMissingFields(t *testing.T) {
	n := New(nil)

	rec := record("Dr. Ayşe Yılmaz")
	rec.FormattedAddress = ""
	rec.PhoneNumber = "  "

	provider := n.Normalize(rec, entities.ProviderKindDoctor)
	require.NotNil(t, provider)
	assert.Equal(t, AddressUnknown, provider.Address)
	assert.Equal(t, PhoneUnknown, provider.Phone)
	assert.Nil(t, provider.Rating)
	assert.Nil(t, provider.ReviewCount)
}

func TestNormalize_RatingOutOfRangeIsDropped(t *testing.T) {
	n := New(nil)

	bad := 7.2
	rec := record("Dr. Ayşe Yılmaz")
	rec.Rating = &bad

	provider := n.Normalize(rec, entities.ProviderKindDoctor)
	require.NotNil(t, provider)
	assert.Nil(t, provider.Rating)
}

func TestNormalize_GeneratesIDWhenMissing(t *testing.T) {
	n := New(nil)

	rec := record("Dr. Ayşe Yılmaz")
	rec.PlaceID = ""

	provider := n.Normalize(rec, entities.ProviderKindDoctor)
	require.NotNil(t, provider)
	assert.NotEmpty(t, provider.ID)
}

func TestContainsChildTerm(t *testing.T) {
	n := New(nil)

	assert.True(t, n.ContainsChildTerm("çocuk doktoru kadıköy"))
	assert.True(t, n.ContainsChildTerm("ÇOCUK kardiyoloji"))
	assert.True(t, n.ContainsChildTerm("pediatric cardiology"))
	assert.False(t, n.ContainsChildTerm("göz doktoru"))
}

func TestLowerTR(t *testing.T) {
	assert.Equal(t, "tıp merkezi", lowerTR("TIP MERKEZİ"))
	assert.Equal(t, "istanbul", lowerTR("İSTANBUL"))
}
