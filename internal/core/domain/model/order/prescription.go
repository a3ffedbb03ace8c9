package order

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"epharmacy/internal/core/domain/model/kernel"
	"epharmacy/internal/pkg/errs"
	"epharmacy/internal/pkg/guard"
)

// MaxPharmacistNotesLength bounds review notes.
const MaxPharmacistNotesLength = 512

var ErrPrescriptionIsNotConstructed = errors.New("Prescription must be created via NewPrescription constructor")

// PrescriptionStatus is the outcome of a prescription review.
type PrescriptionStatus int

const (
	PrescriptionStatusUnknown PrescriptionStatus = iota
	PrescriptionPending
	PrescriptionInReview
	PrescriptionApproved
	PrescriptionRejected
)

var prescriptionStatusNames = map[PrescriptionStatus]string{
	PrescriptionStatusUnknown: "Unknown",
	PrescriptionPending:       "Pending",
	PrescriptionInReview:      "InReview",
	PrescriptionApproved:      "Approved",
	PrescriptionRejected:      "Rejected",
}

// PrescriptionStatuses returns every valid prescription status in numeric order.
func PrescriptionStatuses() []PrescriptionStatus {
	return []PrescriptionStatus{PrescriptionPending, PrescriptionInReview, PrescriptionApproved, PrescriptionRejected}
}

func (s PrescriptionStatus) String() string {
	if str, ok := prescriptionStatusNames[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate rejects PrescriptionStatusUnknown and out-of-range values.
func (s PrescriptionStatus) Validate() error {
	if s < PrescriptionPending || s > PrescriptionRejected {
		return ErrPrescriptionStatusInvalid
	}
	return nil
}

// ParsePrescriptionStatus converts a name into a PrescriptionStatus.
func ParsePrescriptionStatus(s string) (PrescriptionStatus, error) {
	for status, name := range prescriptionStatusNames {
		if status != PrescriptionStatusUnknown && name == s {
			return status, nil
		}
	}
	return PrescriptionStatusUnknown, ErrPrescriptionStatusInvalid
}

// cascadeStatus is the order status that follows a prescription decision.
func cascadeStatus(current Status, decision PrescriptionStatus) Status {
	switch {
	case decision == PrescriptionApproved && (current == Pending || current == AwaitingPrescriptionReview):
		return Approved
	case decision == PrescriptionRejected:
		return Rejected
	default:
		return AwaitingPrescriptionReview
	}
}

// Prescription is the uploaded prescription of an order. storagePath is an
// opaque reference returned by the prescription storage.
type Prescription struct {
	id              kernel.UUID
	fileName        string
	storagePath     string
	status          PrescriptionStatus
	pharmacistNotes string
	guard           guard.ConstructorGuard
}

// NewPrescription creates a prescription awaiting review.
func NewPrescription(id kernel.UUID, fileName, storagePath string) (*Prescription, error) {
	return RestorePrescription(id, fileName, storagePath, PrescriptionPending, "")
}

// RestorePrescription rebuilds a prescription loaded from persistence.
func RestorePrescription(
	id kernel.UUID,
	fileName, storagePath string,
	status PrescriptionStatus,
	pharmacistNotes string,
) (*Prescription, error) {
	p := &Prescription{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setFileName(fileName),
		p.setStoragePath(storagePath),
		p.setReview(status, pharmacistNotes),
	); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Prescription) Validate() error {
	if p == nil {
		return ErrPrescriptionIsNotConstructed
	}
	return p.guard.Validate(ErrPrescriptionIsNotConstructed)
}

func (p *Prescription) ID() kernel.UUID            { return p.id }
func (p *Prescription) FileName() string           { return p.fileName }
func (p *Prescription) StoragePath() string        { return p.storagePath }
func (p *Prescription) Status() PrescriptionStatus { return p.status }
func (p *Prescription) PharmacistNotes() string    { return p.pharmacistNotes }

func (p *Prescription) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Prescription) setFileName(fileName string) error {
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return errs.NewValueIsRequiredError("fileName")
	}
	p.fileName = fileName
	return nil
}

func (p *Prescription) setStoragePath(storagePath string) error {
	if strings.TrimSpace(storagePath) == "" {
		return errs.NewValueIsRequiredError("storagePath")
	}
	p.storagePath = storagePath
	return nil
}

func (p *Prescription) setReview(status PrescriptionStatus, notes string) error {
	if err := status.Validate(); err != nil {
		return err
	}
	notes = strings.TrimSpace(notes)
	if utf8.RuneCountInString(notes) > MaxPharmacistNotesLength {
		return errs.NewValueIsInvalidErrorWithCause("pharmacistNotes",
			fmt.Errorf("longer than %d characters", MaxPharmacistNotesLength))
	}
	p.status = status
	p.pharmacistNotes = notes
	return nil
}
