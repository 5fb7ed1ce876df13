// Package booking drives the appointment selection flow over a hospital's
// departments, doctors and availability slots.
package booking

import (
	"context"
	"errors"
	"fmt"

	"health-management/pkg/client"
	"health-management/pkg/session"
)

type Step int

const (
	StepNone Step = iota
	StepDepartment
	StepDoctor
	StepDate
	StepSlot
	StepSubmitted
)

func (s Step) String() string {
	switch s {
	case StepNone:
		return "none"
	case StepDepartment:
		return "department"
	case StepDoctor:
		return "doctor"
	case StepDate:
		return "date"
	case StepSlot:
		return "slot"
	case StepSubmitted:
		return "submitted"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

var (
	ErrIncompleteSelection = errors.New("please select a doctor, date, appointment type, and time slot")
	ErrNotLoggedIn         = errors.New("please log in to book an appointment")
	ErrUnknownDepartment   = errors.New("department not offered by this hospital")
	ErrUnknownDoctor       = errors.New("doctor not in the selected department")
	ErrUnknownDate         = errors.New("doctor has no slots on this date")
	ErrUnknownSlot         = errors.New("slot not offered on the selected date")
	ErrOutOfOrder          = errors.New("previous step not selected")
)

// AppointmentCreator is satisfied by *client.Client.
type AppointmentCreator interface {
	CreateAppointment(ctx context.Context, req client.CreateAppointmentRequest) (*client.Appointment, error)
}

// UserSource is satisfied by *session.State.
type UserSource interface {
	User() (session.User, bool)
}

// Slots is the time slots offered on one date, split by modality.
type Slots struct {
	Offline []string
	Online  []string
}

// Flow holds one patient's selection for one hospital. It is not safe for
// concurrent use.
type Flow struct {
	hospital client.Hospital
	creator  AppointmentCreator
	users    UserSource

	department *client.Department
	doctor     *client.Doctor
	date       string
	slot       string
	slotType   client.AppointmentType
	submitted  *client.Appointment
}

func NewFlow(hospital client.Hospital, creator AppointmentCreator, users UserSource) *Flow {
	return &Flow{hospital: hospital, creator: creator, users: users}
}

// Step reports how far the selection has progressed.
func (f *Flow) Step() Step {
	switch {
	case f.submitted != nil:
		return StepSubmitted
	case f.slot != "":
		return StepSlot
	case f.date != "":
		return StepDate
	case f.doctor != nil:
		return StepDoctor
	case f.department != nil:
		return StepDepartment
	default:
		return StepNone
	}
}

func (f *Flow) Departments() []client.Department {
	return f.hospital.Departments
}

// SelectDepartment resets doctor, date and slot.
func (f *Flow) SelectDepartment(name string) error {
	for i := range f.hospital.Departments {
		if f.hospital.Departments[i].Name == name {
			f.department = &f.hospital.Departments[i]
			f.doctor = nil
			f.resetDate()
			return nil
		}
	}
	return ErrUnknownDepartment
}

func (f *Flow) Doctors() []client.Doctor {
	if f.department == nil {
		return nil
	}
	return f.department.Doctors
}

// SelectDoctor picks a doctor by email and resets date and slot.
func (f *Flow) SelectDoctor(email string) error {
	if f.department == nil {
		return ErrOutOfOrder
	}
	for i := range f.department.Doctors {
		if f.department.Doctors[i].Email == email {
			f.doctor = &f.department.Doctors[i]
			f.resetDate()
			return nil
		}
	}
	return ErrUnknownDoctor
}

// AvailableDates returns the distinct dates across the doctor's offline and
// online slots in first-seen order.
func (f *Flow) AvailableDates() []string {
	if f.doctor == nil {
		return nil
	}
	seen := make(map[string]struct{})
	dates := []string{}
	for _, slots := range [][]client.AvailabilitySlot{f.doctor.Availability.Offline, f.doctor.Availability.Online} {
		for _, s := range slots {
			if _, ok := seen[s.Date]; ok {
				continue
			}
			seen[s.Date] = struct{}{}
			dates = append(dates, s.Date)
		}
	}
	return dates
}

// SelectDate resets the slot and its type.
func (f *Flow) SelectDate(date string) error {
	if f.doctor == nil {
		return ErrOutOfOrder
	}
	for _, d := range f.AvailableDates() {
		if d == date {
			f.resetDate()
			f.date = date
			return nil
		}
	}
	return ErrUnknownDate
}

// AvailableSlots returns the time slots on date for each modality.
func (f *Flow) AvailableSlots(date string) Slots {
	out := Slots{Offline: []string{}, Online: []string{}}
	if f.doctor == nil {
		return out
	}
	for _, s := range f.doctor.Availability.Offline {
		if s.Date == date {
			out.Offline = append(out.Offline, s.Time)
		}
	}
	for _, s := range f.doctor.Availability.Online {
		if s.Date == date {
			out.Online = append(out.Online, s.Time)
		}
	}
	return out
}

// SelectSlot picks a time from the list of the given modality.
func (f *Flow) SelectSlot(slot string, slotType client.AppointmentType) error {
	if f.date == "" {
		return ErrOutOfOrder
	}
	if !slotType.IsValid() {
		return fmt.Errorf("invalid appointment type %q", slotType)
	}

	slots := f.AvailableSlots(f.date)
	list := slots.Offline
	if slotType == client.AppointmentTypeOnline {
		list = slots.Online
	}
	for _, s := range list {
		if s == slot {
			f.slot = slot
			f.slotType = slotType
			f.submitted = nil
			return nil
		}
	}
	return ErrUnknownSlot
}

// Selection returns the chosen slot and its type.
func (f *Flow) Selection() (slot string, slotType client.AppointmentType) {
	return f.slot, f.slotType
}

// Request assembles the create request. It fails without calling anything
// when the selection is incomplete or nobody is signed in.
func (f *Flow) Request() (client.CreateAppointmentRequest, error) {
	if f.doctor == nil || f.date == "" || f.slot == "" || !f.slotType.IsValid() {
		return client.CreateAppointmentRequest{}, ErrIncompleteSelection
	}
	user, ok := f.users.User()
	if !ok || user.ID == "" {
		return client.CreateAppointmentRequest{}, ErrNotLoggedIn
	}

	return client.CreateAppointmentRequest{
		PatientID:        user.ID,
		DoctorName:       f.doctor.Name,
		DoctorEmail:      f.doctor.Email,
		HospitalName:     f.hospital.Name,
		HospitalLocation: f.hospital.Vicinity,
		Department:       f.department.Name,
		AppointmentDate:  f.date,
		TimeSlot:         f.slot,
	}, nil
}

// Submit creates the appointment. On success the slot is cleared so the same
// doctor and date can be booked again.
func (f *Flow) Submit(ctx context.Context) (*client.Appointment, error) {
	req, err := f.Request()
	if err != nil {
		return nil, err
	}

	appointment, err := f.creator.CreateAppointment(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to book appointment: %w", err)
	}

	f.submitted = appointment
	f.slot = ""
	f.slotType = ""
	return appointment, nil
}

func (f *Flow) resetDate() {
	f.date = ""
	f.slot = ""
	f.slotType = ""
	f.submitted = nil
}
