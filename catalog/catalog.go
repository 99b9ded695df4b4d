// Package catalog holds the static lookup tables used by the generator:
// per-agency problem catalogs, the disposition vocabulary, and the call
// reception channels. All tables are read-only after package init.
package catalog

import "synth911/models"

// DefaultPriority is returned when a problem is not found in its catalog.
const DefaultPriority = 3

// ArrestMade is the only disposition restricted to LAW.
const ArrestMade = "ARREST MADE"

// Problem pairs a problem name with its response priority (1 highest, 5 lowest).
type Problem struct {
	Name     string
	Priority int
}

var lawProblems = []Problem{
	{"WEAPON VIOL GUN IN PROG", 1},
	{"ALARM RESIDENTIAL NIGHTIME", 1},
	{"ROBBERY IN PROGRESS", 1},
	{"SHOOTING", 1},
	{"STABBING", 1},
	{"OFFICER NEEDS ASSISTANCE", 1},
	{"HOSTAGE SITUATION", 1},
	{"SUICIDAL SUBJECT", 1},

	{"DOMESTIC VIOL NO INJ", 2},
	{"DOMESTIC VIOL WITH INJ", 2},
	{"DWI - DRUNK/INTOX DRIVER", 2},
	{"DISORDERLY CONDUCT", 2},
	{"911 HANG UP", 2},
	{"ASSAULT", 2},
	{"BURGLARY IN PROGRESS", 2},
	{"SUSPICIOUS PERSON WITH WEAPON", 2},

	{"SUSPICIOUS EVENT", 3},
	{"SUSPICIOUS PERSON", 3},
	{"SUSPICIOUS VEHICLE", 3},
	{"TRESPASSING", 3},
	{"LARCENY IN PROGRESS", 3},
	{"TRAFFIC ACCIDENT NO INJURY", 3},
	{"ALARM COMMERCIAL", 3},

	{"NOISE COMPLAINT IN PROG", 4},
	{"NOISE COMPLAINT DELAY", 4},
	{"PARKING COMPLAINT", 4},
	{"TRAFFIC STOP", 4},
	{"DISABLED MOTORIST", 4},
	{"PUBLIC SERVICE - LAW", 4},
	{"ASSIST CITIZEN", 4},

	{"PROPERTY LOST TRU", 5},
	{"POLICE INFORMATION", 5},
	{"FOLLOW UP", 5},
	{"LARCENY REPORT", 5},
	{"FRAUD REPORT", 5},
	{"VANDALISM REPORT", 5},
	{"MENTAL HEALTH", 5},
	{"DRUG COMPLAINT", 5},
	{"FLAG DOWN", 5},
	{"GLA", 5},
}

var emsProblems = []Problem{
	{"CARDIAC ARREST ALS", 1},
	{"UNCONSCIOUS ALS", 1},
	{"ALTERED LOC ALS", 1},
	{"STROKE ALS", 1},
	{"MUTUAL ALS", 1},
	{"ALLERGIC REACTION ALS", 1},
	{"OVERDOSE ALS", 1},
	{"TRAUMATIC INJURY ALS", 1},
	{"DROWNING", 1},

	{"TROUBLE BREATHING ALS", 2},
	{"CHEST PAIN ALS", 2},
	{"HEART PROBLEMS ALS", 2},
	{"SEIZURE ALS", 2},
	{"DIABETIC EMERGENCY ALS", 2},
	{"ASSAULT ALS", 2},
	{"PSYCHIATRIC EMERGENCY ALS", 2},
	{"ALS EMERGENCY", 2},

	{"BLS EMERGENCY", 3},
	{"FALL BLS", 3},
	{"INJURED PERSON BLS", 3},
	{"BACK PAIN BLS", 3},
	{"HEADACHE BLS", 3},
	{"SICK PERSON BLS", 3},

	{"PUBLIC SERICE EMS", 4},
	{"MINOR MEDICAL", 4},
	{"ASSIST CITIZEN - EMS", 4},

	{"MEDICAL ALARM", 5},
	{"ROUTINE TRANSPORT", 5},
	{"MENTAL HEALTH ALS", 5},
	{"WELFARE CHECK", 5},
}

var fireProblems = []Problem{
	{"RESIDENTIAL BUILDING FIRE", 1},
	{"HIGHRISE BUILDING FIRE", 1},
	{"COMMERCIAL BUILDING FIRE", 1},
	{"ENTRAPMENT", 1},
	{"MVC SCHOOL BUS", 1},
	{"HAZMAT MAJOR", 1},
	{"STRUCTURE COLLAPSE", 1},

	{"MVC AUTO", 2},
	{"GAS LEAK", 2},
	{"CO ALARM", 2},
	{"OUTSIDE FIRE", 2},
	{"APPLIANCE FIRE", 2},
	{"MVC MOTORCYCLE", 2},
	{"WIRES DOWN", 2},
	{"HAZMAT", 2},

	{"FIRE ALARM", 3},
	{"ELEVATOR", 3},
	{"ODOR OF SMOKE", 3},
	{"WATER LEAK", 3},
	{"SMOKE DETECTOR", 3},

	{"PUBLIC SERVICE - FIRE", 4},
	{"LOCKOUT", 4},
	{"ASSIST CITIZEN - FIRE", 4},
	{"ANIMAL RESCUE", 4},

	{"FIRE INSPECTION", 5},
	{"FIRE PREVENTION", 5},
	{"FIRE EDUCATION", 5},
	{"SMOKE DETECTOR INSTALLATION", 5},
}

var rescueProblems = []Problem{
	{"WATER RESCUE IN PROGRESS", 1},
	{"MOUNTAIN RESCUE IN PROGRESS", 1},
	{"VEHICLE EXTRICATION WITH ENTRAPMENT", 1},
	{"CONFINED SPACE RESCUE", 1},
	{"HIGH ANGLE RESCUE", 1},
	{"SEARCH AND RESCUE - MISSING PERSON", 1},
	{"TECHNICAL RESCUE - STRUCTURE COLLAPSE", 1},

	{"WATER RESCUE STANDBY", 2},
	{"MOUNTAIN RESCUE STANDBY", 2},
	{"VEHICLE EXTRICATION NO ENTRAPMENT", 2},
	{"SEARCH AND RESCUE - NON-CRITICAL", 2},
	{"ANIMAL RESCUE - DANGEROUS SITUATION", 2},

	{"ANIMAL RESCUE - NON-URGENT", 3},
	{"PUBLIC ASSIST RESCUE", 3},
	{"STANDBY FOR EVENT", 3},

	{"EQUIPMENT CHECK RESCUE", 4},
	{"TRAINING EXERCISE RESCUE", 4},
	{"PUBLIC EDUCATION RESCUE", 4},

	{"RESCUE REPORT ONLY", 5},
	{"RESCUE INFORMATION", 5},
	{"FOLLOW UP RESCUE", 5},
}

var dispositions = []string{
	"CANCELLED",
	"NO ACTION TAKEN",
	"REFERRED TO OTHER AGENCY",
	"REPORT TAKEN",
	ArrestMade,
	"CITATION ISSUED",
	"UNIT CLEARED",
	"TAKEN TO HOSPITAL",
}

// Channel is a call reception method with its share of incoming calls.
type Channel struct {
	Name   string
	Weight float64
}

var receptionChannels = []Channel{
	{"E-911", 0.55},
	{"PHONE", 0.20},
	{"OFFICER", 0.10},
	{"TEXT", 0.10},
	{"C2C", 0.05},
}

var (
	problemsByAgency = map[models.Agency][]Problem{
		models.AgencyLaw:    lawProblems,
		models.AgencyEMS:    emsProblems,
		models.AgencyFire:   fireProblems,
		models.AgencyRescue: rescueProblems,
	}
	priorityByAgency   = buildPriorityIndex()
	nonLawDispositions = withoutArrest(dispositions)
)

func buildPriorityIndex() map[models.Agency]map[string]int {
	index := make(map[models.Agency]map[string]int, len(problemsByAgency))
	for agency, problems := range problemsByAgency {
		byName := make(map[string]int, len(problems))
		for _, p := range problems {
			byName[p.Name] = p.Priority
		}
		index[agency] = byName
	}
	return index
}

func withoutArrest(all []string) []string {
	out := make([]string, 0, len(all)-1)
	for _, d := range all {
		if d != ArrestMade {
			out = append(out, d)
		}
	}
	return out
}

// Problems returns the catalog for an agency. The returned slice must not be modified.
func Problems(agency models.Agency) []Problem {
	return problemsByAgency[agency]
}

// Priority resolves the priority of a problem within an agency's catalog.
// Unknown agencies or problems resolve to DefaultPriority.
func Priority(agency models.Agency, problem string) int {
	if p, ok := priorityByAgency[agency][problem]; ok {
		return p
	}
	return DefaultPriority
}

// Dispositions returns the dispositions an agency may record.
// Only LAW may record ArrestMade. The returned slice must not be modified.
func Dispositions(agency models.Agency) []string {
	if agency == models.AgencyLaw {
		return dispositions
	}
	return nonLawDispositions
}

// ReceptionChannels returns the call reception channels and their weights.
func ReceptionChannels() []Channel {
	return receptionChannels
}
