package domain

import "time"

// DefaultLoanBusinessDays is the loan period counted in business days
const DefaultLoanBusinessDays = 3

// AddBusinessDays moves t forward by n weekdays. Only Saturday and Sunday are
// skipped; there is no holiday calendar and the time of day is kept.
func AddBusinessDays(t time.Time, n int) time.Time {
	for n > 0 {
		t = t.AddDate(0, 0, 1)
		if wd := t.Weekday(); wd != time.Saturday && wd != time.Sunday {
			n--
		}
	}
	return t
}

// DetailTarget is what a loan detail points at: exactly one physical copy or
// one virtual record. Build it with Fisico, Virtual or NewDetailTarget.
type DetailTarget struct {
	kind TipoDetalle
	id   uint
}

// Fisico targets a physical copy
func Fisico(copyID uint) DetailTarget {
	return DetailTarget{kind: DetalleFisico, id: copyID}
}

// Virtual targets a virtual record
func Virtual(virtualID uint) DetailTarget {
	return DetailTarget{kind: DetalleVirtual, id: virtualID}
}

// NewDetailTarget validates a raw detail request. The kind must be known and
// the matching reference must be present.
func NewDetailTarget(kind TipoDetalle, fisicoID, virtualID *uint) (DetailTarget, error) {
	switch kind {
	case DetalleFisico:
		if fisicoID == nil || *fisicoID == 0 {
			return DetailTarget{}, ErrDetailTargetMismatch
		}
		return Fisico(*fisicoID), nil
	case DetalleVirtual:
		if virtualID == nil || *virtualID == 0 {
			return DetailTarget{}, ErrDetailTargetMismatch
		}
		return Virtual(*virtualID), nil
	}
	return DetailTarget{}, Invalid("unknown detail kind " + string(kind))
}

// Kind returns FISICO or VIRTUAL
func (d DetailTarget) Kind() TipoDetalle { return d.kind }

// ID returns the referenced copy or virtual record id
func (d DetailTarget) ID() uint { return d.id }

// IsFisico reports whether the target is a physical copy
func (d DetailTarget) IsFisico() bool { return d.kind == DetalleFisico }

// FisicoID returns the copy id as a nullable column value
func (d DetailTarget) FisicoID() *uint {
	if d.kind != DetalleFisico {
		return nil
	}
	id := d.id
	return &id
}

// VirtualID returns the virtual record id as a nullable column value
func (d DetailTarget) VirtualID() *uint {
	if d.kind != DetalleVirtual {
		return nil
	}
	id := d.id
	return &id
}
