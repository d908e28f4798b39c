package models

const (
	SymptomIntensityMild     = 1
	SymptomIntensityModerate = 2
	SymptomIntensitySevere   = 3
)

type KnownSymptom struct {
	ID    string
	Name  string
	Icon  string
	Color string
}

func KnownSymptoms() []KnownSymptom {
	return []KnownSymptom{
		{ID: "cramps", Name: "Cramps", Icon: "🩸", Color: "#FF4444"},
		{ID: "headache", Name: "Headache", Icon: "🤕", Color: "#FFA500"},
		{ID: "mood_swings", Name: "Mood swings", Icon: "😢", Color: "#9B59B6"},
		{ID: "bloating", Name: "Bloating", Icon: "🎈", Color: "#3498DB"},
		{ID: "fatigue", Name: "Fatigue", Icon: "😴", Color: "#95A5A6"},
		{ID: "breast_tenderness", Name: "Breast tenderness", Icon: "💔", Color: "#E91E63"},
		{ID: "acne", Name: "Acne", Icon: "🔴", Color: "#E74C3C"},
		{ID: "back_pain", Name: "Back pain", Icon: "🦴", Color: "#8E6E53"},
		{ID: "nausea", Name: "Nausea", Icon: "🤢", Color: "#7CB342"},
		{ID: "spotting", Name: "Spotting", Icon: "🩹", Color: "#C55A7A"},
		{ID: "irritability", Name: "Irritability", Icon: "😤", Color: "#FF7043"},
		{ID: "insomnia", Name: "Insomnia", Icon: "🌙", Color: "#5C6BC0"},
		{ID: "food_cravings", Name: "Food cravings", Icon: "🍫", Color: "#A1887F"},
	}
}

func LookupKnownSymptom(id string) (KnownSymptom, bool) {
	for _, symptom := range KnownSymptoms() {
		if symptom.ID == id {
			return symptom, true
		}
	}
	return KnownSymptom{}, false
}

func IsValidSymptomIntensity(intensity int) bool {
	return intensity >= SymptomIntensityMild && intensity <= SymptomIntensitySevere
}
