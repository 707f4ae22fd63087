// Package st0102 contains the Universal Labels of the security metadata elements.
// Specification: MISB ST 0102
package st0102

import (
	"fmt"

	"github.com/jackhart/jmisb/pkg/klv"
)

// Version is the ST 0102 version the labels belong to.
const Version = 12

// Key is a security metadata element.
type Key int

// keys.
const (
	SecurityClassification Key = iota + 1
	CCCodingMethod
	ClassifyingCountry
	SCISHIInformation
	Caveats
	ReleasingInstructions
	ClassifiedBy
	DerivedFrom
	ClassificationReason
	DeclassificationDate
	MarkingSystem
	OCCodingMethod
	ObjectCountryCodes
	ClassificationComments
	VersionNumber
	CCCodingMethodVersionDate
	OCCodingMethodVersionDate
)

var keyNames = map[Key]string{
	SecurityClassification:    "Security Classification",
	CCCodingMethod:            "Classifying Country and Releasing Instructions Country Coding Method",
	ClassifyingCountry:        "Classifying Country",
	SCISHIInformation:         "SCI/SHI Information",
	Caveats:                   "Caveats",
	ReleasingInstructions:     "Releasing Instructions",
	ClassifiedBy:              "Classified By",
	DerivedFrom:               "Derived From",
	ClassificationReason:      "Classification Reason",
	DeclassificationDate:      "Declassification Date",
	MarkingSystem:             "Classification and Marking System",
	OCCodingMethod:            "Object Country Coding Method",
	ObjectCountryCodes:        "Object Country Codes",
	ClassificationComments:    "Classification Comments",
	VersionNumber:             "Version",
	CCCodingMethodVersionDate: "Classifying Country and Releasing Instructions Country Coding Method Version Date",
	OCCodingMethodVersionDate: "Object Country Coding Method Version Date",
}

// String implements fmt.Stringer.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

// Labels maps every element to its Universal Label.
// It must not be modified.
var Labels = map[Key]klv.UniversalLabel{
	SecurityClassification: {
		0x06, 0x0e, 0x2b, 0x34, 0x01, 0x01, 0x01, 0x03,
		0x02, 0x08, 0x02, 0x01, 0x00, 0x00, 0x00, 0x00,
	},
	CCCodingMethod: {
		0x06, 0x0e, 0x2b, 0x34, 0x01, 0x01, 0x01, 0x03,
		0x07, 0x01, 0x20, 0x01, 0x02, 0x07, 0x00, 0x00,
	},
	ClassifyingCountry: {
		0x06, 0x0e, 0x2b, 0x34, 0x01, 0x01, 0x01, 0x03,
		0x07, 0x01, 0x20, 0x01, 0x02, 0x08, 0x00, 0x00,
	},
	SCISHIInformation: {
		0x06, 0x0e, 0x2b, 0x34, 0x01, 0x01, 0x01, 0x01,
		0x0e, 0x01, 0x02, 0x03, 0x02, 0x00, 0x00, 0x00,
	},
	Caveats: {
		0x06, 0x0e, 0x2b, 0x34, 0x01, 0x01, 0x01, 0x03,
		0x02, 0x08, 0x02, 0x02, 0x00, 0x00, 0x00, 0x00,
	},
	ReleasingInstructions: {
		0x06, 0x0e, 0x2b, 0x34, 0x01, 0x01, 0x01, 0x03,
		0x07, 0x01, 0x20, 0x01, 0x02, 0x09, 0x00, 0x00,
	},
	ClassifiedBy: {
		0x06, 0x0e, 0x2b, 0x34, 0x01, 0x01, 0x01, 0x03,
		0x02, 0x08, 0x02, 0x03, 0x00, 0x00, 0x00, 0x00,
	},
	DerivedFrom: {
		0x06, 0x0e, 0x2b, 0x34, 0x01, 0x01, 0x01, 0x03,
		0x02, 0x08, 0x02, 0x06, 0x00, 0x00, 0x00, 0x00,
	},
	ClassificationReason: {
		0x06, 0x0e, 0x2b, 0x34, 0x01, 0x01, 0x01, 0x03,
		0x02, 0x08, 0x02, 0x04, 0x00, 0x00, 0x00, 0x00,
	},
	DeclassificationDate: {
		0x06, 0x0e, 0x2b, 0x34, 0x01, 0x01, 0x01, 0x03,
		0x02, 0x08, 0x02, 0x05, 0x00, 0x00, 0x00, 0x00,
	},
	MarkingSystem: {
		0x06, 0x0e, 0x2b, 0x34, 0x01, 0x01, 0x01, 0x03,
		0x02, 0x08, 0x02, 0x08, 0x00, 0x00, 0x00, 0x00,
	},
	OCCodingMethod: {
		0x06, 0x0e, 0x2b, 0x34, 0x01, 0x01, 0x01, 0x03,
		0x07, 0x01, 0x20, 0x01, 0x02, 0x06, 0x00, 0x00,
	},
	ObjectCountryCodes: {
		0x06, 0x0e, 0x2b, 0x34, 0x01, 0x01, 0x01, 0x03,
		0x07, 0x01, 0x20, 0x01, 0x02, 0x01, 0x01, 0x00,
	},
	ClassificationComments: {
		0x06, 0x0e, 0x2b, 0x34, 0x01, 0x01, 0x01, 0x03,
		0x02, 0x08, 0x02, 0x07, 0x00, 0x00, 0x00, 0x00,
	},
	VersionNumber: {
		0x06, 0x0e, 0x2b, 0x34, 0x01, 0x01, 0x01, 0x01,
		0x0e, 0x01, 0x02, 0x05, 0x04, 0x00, 0x00, 0x00,
	},
	CCCodingMethodVersionDate: {
		0x06, 0x0e, 0x2b, 0x34, 0x01, 0x01, 0x01, 0x01,
		0x0e, 0x01, 0x04, 0x03, 0x03, 0x00, 0x00, 0x00,
	},
	OCCodingMethodVersionDate: {
		0x06, 0x0e, 0x2b, 0x34, 0x01, 0x01, 0x01, 0x01,
		0x0e, 0x01, 0x04, 0x03, 0x04, 0x00, 0x00, 0x00,
	},
}

// Keys maps every Universal Label to its element.
// It must not be modified.
var Keys = func() map[klv.UniversalLabel]Key {
	m := make(map[klv.UniversalLabel]Key, len(Labels))
	for k, ul := range Labels {
		m[ul] = k
	}
	return m
}()

// Lookup returns the element identified by a Universal Label.
func Lookup(ul klv.UniversalLabel) (Key, bool) {
	k, ok := Keys[ul]
	return k, ok
}
