package storage

import "github.com/gabrielfornes/flowsheet/internal/flowsheet"

// Defaults returns the built-in reference data, used when the workspace has no
// reference.yaml and written out by `flowsheet init`.
func Defaults() Reference {
	return Reference{
		Catalog:   append([]flowsheet.CatalogEntry(nil), defaultCatalog...),
		Codes:     append([]flowsheet.CodeOption(nil), defaultCodes...),
		EvalCodes: append([]flowsheet.CodeOption(nil), defaultEvalCodes...),
		Modifiers: append([]flowsheet.CodeOption(nil), defaultModifiers...),
		Providers: append([]string(nil), defaultProviders...),
		Groups:    defaultGroups(),
	}
}

var defaultCatalog = []flowsheet.CatalogEntry{
	{ID: "hep_17392", Name: "Quad Set (Isometric)", Region: "Knee / Quads", Ref: "17392", Description: "Isometric quadriceps strengthening exercise performed by contracting the thigh muscles without moving the leg."},
	{ID: "hep_7501", Name: "Long Arc Quad (LAQ)", Region: "Knee / Quads", Ref: "7501", Description: "Quadriceps strengthening exercise performed by lifting the leg with the knee extended through a full range of motion."},
	{ID: "hep_392", Name: "Short Arc Quad (SAQ)", Region: "Knee / Quads", Ref: "392", Description: "Quadriceps strengthening exercise performed by lifting the leg with the knee bent, focusing on the last 30 degrees of extension."},
	{ID: "hep_3891", Name: "Heel Slide", Region: "Knee / Hip ROM", Ref: "3891", Description: "Knee range of motion exercise performed by sliding the heel along a surface to improve knee flexion."},
	{ID: "hep_3941", Name: "Straight Leg Raise (SLR) - Supine", Region: "Hip Flexor / Quads", Ref: "3941", Description: "Hip flexor and quadriceps strengthening exercise performed by lifting the leg straight up while lying on your back."},
	{ID: "hep_3948", Name: "Glute Bridge (Two Leg)", Region: "Glutes / Hamstrings / Core", Ref: "3948", Description: "Glute and hamstring strengthening exercise performed by lifting the hips off the ground while lying on your back."},
	{ID: "hep_3883", Name: "Clamshell", Region: "Hip Abductors / Glutes", Ref: "3883"},
	{ID: "hep_3863", Name: "Hip Abduction - Side-lying", Region: "Hip Abductors", Ref: "3863"},
	{ID: "hep_2163", Name: "Single Knee to Chest Stretch", Region: "Low Back / Hip Flexors", Ref: "2163"},
	{ID: "hep_2372", Name: "Piriformis Stretch - Supine", Region: "Glutes / Piriformis", Ref: "2372"},
	{ID: "hep_2148", Name: "Standing Calf Stretch (Gastroc)", Region: "Calf / Ankle", Ref: "2148"},
	{ID: "hep_2149", Name: "Standing Soleus Stretch (Bent Knee)", Region: "Calf / Ankle", Ref: "2149"},
	{ID: "hep_159", Name: "Ankle Pumps (DF/PF)", Region: "Ankle / Circulation", Ref: "159"},
	{ID: "hep_1130", Name: "Ankle Alphabet", Region: "Ankle ROM", Ref: "1130"},
	{ID: "hep_162", Name: "Shoulder Pendulum (Codman's)", Region: "Shoulder ROM", Ref: "162"},
	{ID: "hep_545", Name: "Shoulder Flexion (Cane/AAROM)", Region: "Shoulder ROM", Ref: "545"},
	{ID: "hep_544", Name: "Shoulder Abduction (Cane/AAROM)", Region: "Shoulder ROM", Ref: "544"},
	{ID: "hep_1857", Name: "External Rotation (Theraband)", Region: "Shoulder Strength (Rotator Cuff)", Ref: "1857"},
	{ID: "hep_1858", Name: "Internal Rotation (Theraband)", Region: "Shoulder Strength (Rotator Cuff)", Ref: "1858"},
	{ID: "hep_550", Name: "Scapular Retraction (Squeeze)", Region: "Upper Back / Posture", Ref: "550"},
	{ID: "hep_611", Name: "Cervical Retraction (Chin Tuck)", Region: "Neck / Posture", Ref: "611"},
	{ID: "hep_1274", Name: "Wrist Flexion Stretch", Region: "Wrist / Forearm", Ref: "1274"},
	{ID: "hep_1273", Name: "Wrist Extension Stretch", Region: "Wrist / Forearm", Ref: "1273"},
	{ID: "hep_1543", Name: "Bicep Curl (Dumbbell/Theraband)", Region: "Elbow / Biceps", Ref: "1543"},
	{ID: "hep_1557", Name: "Tricep Extension (Overhead/Standing)", Region: "Elbow / Triceps", Ref: "1557"},
	{ID: "hep_2502", Name: "Cat-Cow Stretch", Region: "Spine Mobility", Ref: "2502"},
	{ID: "hep_2506", Name: "Bird Dog (Contralateral Limb Lift)", Region: "Core Stability", Ref: "2506"},
	{ID: "hep_2161", Name: "Abdominal Bracing (Transversus Abdominis)", Region: "Core Stability", Ref: "2161"},
	{ID: "hep_2159", Name: "Marching - Supine (Core)", Region: "Core Stability / Hip Flexion", Ref: "2159"},
	{ID: "hep_4095", Name: "Mini Squat (Wall Slide)", Region: "Knee / Quads / Glutes", Ref: "4095"},
}

var defaultEvalCodes = []flowsheet.CodeOption{
	{Code: "97161", Label: "PT Low Complexity Evaluation"},
	{Code: "97162", Label: "PT Moderate Complexity Evaluation"},
	{Code: "97163", Label: "PT High Complexity Evaluation"},
	{Code: "97164", Label: "PT Re-evaluation"},
}

var defaultCodes = []flowsheet.CodeOption{
	{Code: "97110", Label: "Therapeutic Exercise"},
	{Code: "97112", Label: "Neuromuscular Reeducation"},
	{Code: "97116", Label: "Gait Training"},
	{Code: "97140", Label: "Manual Therapy"},
	{Code: "97530", Label: "Therapeutic Activities"},
	{Code: "97535", Label: "Self-Care/Home Training"},
	{Code: "97542", Label: "Wheelchair Management"},
	{Code: "97750", Label: "Physical Performance Test"},
	{Code: "97760", Label: "Orthotic(s) mgmt & training (initial)"},
	{Code: "97761", Label: "Prosthetic mgmt & training (initial)"},
	{Code: "97762", Label: "Orthotic/Prosthetic mgmt follow-up"},
	{Code: "97010", Label: "Hot/cold packs"},
	{Code: "97012", Label: "Mechanical traction"},
	{Code: "97014", Label: "Electrical stimulation (unattended)"},
	{Code: "97016", Label: "Vasopneumatic device"},
	{Code: "97018", Label: "Paraffin"},
	{Code: "97022", Label: "Whirlpool"},
	{Code: "97024", Label: "Diathermy"},
	{Code: "97026", Label: "Infrared"},
	{Code: "97028", Label: "Ultraviolet"},
	{Code: "97032", Label: "Electrical stimulation (manual)"},
	{Code: "97033", Label: "Iontophoresis"},
	{Code: "97034", Label: "Contrast baths"},
	{Code: "97035", Label: "Ultrasound"},
	{Code: "97036", Label: "Hubbard tank"},
	{Code: "29075", Label: "Short arm cast"},
	{Code: "29085", Label: "Long arm cast"},
	{Code: "29125", Label: "Short arm splint"},
	{Code: "29126", Label: "Long arm splint"},
	{Code: "29200", Label: "Strapping thorax"},
	{Code: "29240", Label: "Strapping pelvis/hip"},
	{Code: "29540", Label: "Strapping ankle/foot"},
	{Code: "29550", Label: "Short leg cast"},
	{Code: "29580", Label: "Unna boot"},
	{Code: "29799", Label: "Casting/splinting procedure (unspecified)"},
	{Code: "A4466", Label: "Garment/device for compression"},
	{Code: "L1902", Label: "AFO, prefabricated"},
	{Code: "L3020", Label: "Foot insert, molded"},
	{Code: "L3000", Label: "Foot insert, custom"},
	{Code: "L4386", Label: "Walking boot"},
	{Code: "L4396", Label: "Night splint"},
	{Code: "E0114", Label: "Crutches"},
	{Code: "E0110", Label: "Forearm crutches"},
	{Code: "E0100", Label: "Cane"},
	{Code: "E0143", Label: "Standard walker"},
	{Code: "97597", Label: "Selective wound debridement ≤20 sq cm"},
	{Code: "97598", Label: "Selective wound debridement >20 sq cm"},
	{Code: "97602", Label: "Non-selective wound debridement"},
	{Code: "97605", Label: "Negative pressure wound therapy ≤50 sq cm"},
	{Code: "97606", Label: "Negative pressure wound therapy >50 sq cm"},
	{Code: "97129", Label: "Cognitive function intervention"},
	{Code: "97130", Label: "Each additional 15 min cognitive function"},
	{Code: "97537", Label: "Community mobility"},
	{Code: "97546", Label: "Work hardening/conditioning (initial)"},
	{Code: "97545", Label: "Work hardening/conditioning (subsequent)"},
	{Code: "97532", Label: "Development of cognitive skills"},
	{Code: "97533", Label: "Sensory integration techniques"},
	{Code: "97755", Label: "Assistive technology assessment"},
	{Code: "96127", Label: "Brief emotional/behavioral assessment"},
	{Code: "95851", Label: "ROM measurement"},
	{Code: "95852", Label: "Multiple joint ROM"},
	{Code: "95831", Label: "Muscle testing, manual"},
	{Code: "95832", Label: "Manual muscle test—hand"},
	{Code: "95833", Label: "Manual muscle test—body"},
	{Code: "95834", Label: "Manual muscle test—extra muscle groups"},
	{Code: "96105", Label: "Aphasia language eval"},
	{Code: "96125", Label: "Cognitive functioning assessment"},
	{Code: "97113", Label: "Aquatic therapy"},
	{Code: "97150", Label: "Group therapy"},
	{Code: "97799", Label: "Unlisted physical medicine procedure"},
	{Code: "A4556", Label: "Electrodes (supplies)"},
	{Code: "A4557", Label: "Electrodes, re-use"},
	{Code: "A4450", Label: "Tape"},
	{Code: "A4452", Label: "Tape, specialized"},
	{Code: "A9270", Label: "Non-covered medical equipment"},
	{Code: "93797", Label: "Cardiac rehab"},
	{Code: "93798", Label: "Cardiac rehab with monitoring"},
	{Code: "97124", Label: "Massage therapy"},
	{Code: "97763", Label: "Orthotic/prosthetic training follow-up"},
	{Code: "97139", Label: "Unlisted therapeutic procedure"},
	{Code: "92540", Label: "Vestibular function with recording"},
	{Code: "92541", Label: "Gaze testing"},
	{Code: "92542", Label: "Positional nystagmus testing"},
	{Code: "92544", Label: "Optokinetic nystagmus"},
	{Code: "92545", Label: "Oscillating tracking"},
	{Code: "92546", Label: "Sinusoidal tracking"},
	{Code: "92547", Label: "Caloric vestibular test"},
	{Code: "92548", Label: "Computerized dynamic posturography"},
	{Code: "94667", Label: "Chest physiotherapy"},
}

var defaultModifiers = []flowsheet.CodeOption{
	{Code: "59", Label: "Distinct Procedural Service"},
	{Code: "25", Label: "Significant Separately Identifiable E/M"},
	{Code: "LT", Label: "Left Side"},
	{Code: "RT", Label: "Right Side"},
}

var defaultProviders = []string{
	"Dr. Firstname Lastname",
	"Dr. Alexandra Rivera",
	"Dr. Jordan Kim",
	"Dr. Priya Patel",
}

func defaultGroups() []flowsheet.SeedGroup {
	return []flowsheet.SeedGroup{
		{
			Label: "CPT 97110 · Therapeutic Exercise",
			Tag:   "Strength + Stability",
			Interventions: []flowsheet.SeedRecord{
				{Name: "Seated Shoulder Flexion", Sets: 3, Reps: 5, Weight: "10 lbs", Status: "todo"},
				{Name: "Resisted Row Pattern", Sets: 4, Reps: 6, Weight: "15 lbs", Status: "done"},
				{Name: "Hip Bridge with March", Sets: 3, Reps: 8, Weight: "Bodyweight", Status: "in-progress"},
			},
		},
		{
			Label: "CPT 97112 · Neuromuscular Reeducation",
			Tag:   "Motor control",
			Interventions: []flowsheet.SeedRecord{
				{Name: "Single-leg Stance with Bands", Sets: 2, Reps: 30, Weight: "Bodyweight", Status: "todo"},
				{Name: "BOSU Pelvic Shifts", Sets: 2, Reps: 12, Weight: "Bodyweight", Status: "done"},
			},
		},
		{
			Label: "CPT 97530 · Therapeutic Activity",
			Tag:   "Functional training",
			Interventions: []flowsheet.SeedRecord{
				{Name: "Theraband Overhead Reach", Sets: 3, Reps: 5, Weight: "Red band", Status: "todo"},
				{Name: "Step-up into Reverse Reach", Sets: 3, Reps: 6, Weight: "10 lbs", Status: "in-progress"},
			},
		},
	}
}
