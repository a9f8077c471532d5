package question

import (
	"errors"
	"fmt"
	"strings"
)

// Subject identifies a question bank, e.g. "TPS_PK" or "FISIKA".
type Subject string

const (
	TPSPU     Subject = "TPS_PU"  // general reasoning
	TPSPPU    Subject = "TPS_PPU" // verbal knowledge
	TPSPBM    Subject = "TPS_PBM" // reading comprehension
	TPSPK     Subject = "TPS_PK"  // quantitative knowledge
	LitBIN    Subject = "LITBIN"  // Indonesian literacy
	LitBING   Subject = "LITBING" // English literacy
	PM        Subject = "PM"      // mathematical reasoning
	MatWajib  Subject = "MAT_WAJIB"
	MatLanjut Subject = "MAT_LANJUT"
	Fisika    Subject = "FISIKA"
	Kimia     Subject = "KIMIA"
	Biologi   Subject = "BIOLOGI"
	Ekonomi   Subject = "EKONOMI"
	Geografi  Subject = "GEOGRAFI"
	Sejarah   Subject = "SEJARAH"
	Sosiologi Subject = "SOSIOLOGI"

	// Mix asks for subjects drawn at random from the allowed list.
	Mix Subject = "MIX"
)

const (
	ExamUTBK = "UTBK"
	ExamTKA  = "TKA"

	TrackSaintek = "SAINTEK"
	TrackSoshum  = "SOSHUM"
)

var (
	ErrUnknownExam  = errors.New("unknown exam")
	ErrUnknownTrack = errors.New("unknown track")
)

var (
	utbkSubjects    = []Subject{TPSPU, TPSPPU, TPSPBM, TPSPK, LitBIN, LitBING, PM}
	saintekSubjects = []Subject{MatWajib, MatLanjut, Fisika, Kimia, Biologi}
	soshumSubjects  = []Subject{Ekonomi, Geografi, Sejarah, Sosiologi}
)

// ParseSubject normalizes user input.
func ParseSubject(s string) Subject {
	return Subject(strings.ToUpper(strings.TrimSpace(s)))
}

// AllowedSubjects resolves the subject list for an exam and track. UTBK
// ignores the track. exam and track must already be upper-case.
func AllowedSubjects(exam, track string) ([]Subject, error) {
	switch exam {
	case ExamUTBK:
		return clone(utbkSubjects), nil
	case ExamTKA:
		switch track {
		case TrackSaintek:
			return clone(saintekSubjects), nil
		case TrackSoshum:
			return clone(soshumSubjects), nil
		}
		return nil, fmt.Errorf("%w: %q", ErrUnknownTrack, track)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownExam, exam)
}

// Taxonomy is the static exam → track → subject tree.
type Taxonomy struct {
	UTBK []Subject            `json:"UTBK"`
	TKA  map[string][]Subject `json:"TKA"`
}

func Meta() Taxonomy {
	return Taxonomy{
		UTBK: clone(utbkSubjects),
		TKA: map[string][]Subject{
			TrackSaintek: clone(saintekSubjects),
			TrackSoshum:  clone(soshumSubjects),
		},
	}
}

func clone(s []Subject) []Subject { return append([]Subject(nil), s...) }
