package booking

import (
	"context"
	"errors"
	"testing"

	"health-management/pkg/client"
	"health-management/pkg/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCreator struct {
	calls []client.CreateAppointmentRequest
	err   error
}

func (f *fakeCreator) CreateAppointment(ctx context.Context, req client.CreateAppointmentRequest) (*client.Appointment, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return &client.Appointment{ID: "a1", PatientID: req.PatientID, Status: "scheduled"}, nil
}

type fakeUsers struct {
	user *session.User
}

func (f fakeUsers) User() (session.User, bool) {
	if f.user == nil {
		return session.User{}, false
	}
	return *f.user, true
}

func testHospital() client.Hospital {
	return client.Hospital{
		Name:     "City Hospital",
		Vicinity: "12 Main Road",
		Departments: []client.Department{
			{
				Name: "Cardiology",
				Doctors: []client.Doctor{
					{
						Name:  "Dr. Rao",
						Email: "rao@example.com",
						Availability: client.Availability{
							Offline: []client.AvailabilitySlot{
								{Date: "2025-03-02", Time: "09:00 AM - 10:00 AM"},
								{Date: "2025-03-01", Time: "10:00 AM - 11:00 AM"},
							},
							Online: []client.AvailabilitySlot{
								{Date: "2025-03-01", Time: "04:00 PM - 05:00 PM"},
								{Date: "2025-03-05", Time: "06:00 PM - 07:00 PM"},
							},
						},
					},
					{Name: "Dr. Iyer", Email: "iyer@example.com"},
				},
			},
			{Name: "Neurology"},
		},
	}
}

func signedIn() fakeUsers {
	return fakeUsers{user: &session.User{ID: "p1"}}
}

func TestFlow_AvailableDatesDistinctInOrder(t *testing.T) {
	f := NewFlow(testHospital(), &fakeCreator{}, signedIn())
	require.NoError(t, f.SelectDepartment("Cardiology"))
	require.NoError(t, f.SelectDoctor("rao@example.com"))

	assert.Equal(t, []string{"2025-03-02", "2025-03-01", "2025-03-05"}, f.AvailableDates())

	slots := f.AvailableSlots("2025-03-01")
	assert.Equal(t, []string{"10:00 AM - 11:00 AM"}, slots.Offline)
	assert.Equal(t, []string{"04:00 PM - 05:00 PM"}, slots.Online)
}

func TestFlow_UpstreamChangeResetsDownstream(t *testing.T) {
	f := NewFlow(testHospital(), &fakeCreator{}, signedIn())
	require.NoError(t, f.SelectDepartment("Cardiology"))
	require.NoError(t, f.SelectDoctor("rao@example.com"))
	require.NoError(t, f.SelectDate("2025-03-01"))
	require.NoError(t, f.SelectSlot("04:00 PM - 05:00 PM", client.AppointmentTypeOnline))
	assert.Equal(t, StepSlot, f.Step())

	require.NoError(t, f.SelectDate("2025-03-05"))
	slot, slotType := f.Selection()
	assert.Empty(t, slot)
	assert.Empty(t, slotType)
	assert.Equal(t, StepDate, f.Step())

	require.NoError(t, f.SelectDoctor("iyer@example.com"))
	assert.Equal(t, StepDoctor, f.Step())
	assert.Empty(t, f.AvailableDates())

	require.NoError(t, f.SelectDepartment("Neurology"))
	assert.Equal(t, StepDepartment, f.Step())
	assert.Empty(t, f.Doctors())
}

func TestFlow_SelectSlotChecksModality(t *testing.T) {
	f := NewFlow(testHospital(), &fakeCreator{}, signedIn())
	require.NoError(t, f.SelectDepartment("Cardiology"))
	require.NoError(t, f.SelectDoctor("rao@example.com"))
	require.NoError(t, f.SelectDate("2025-03-01"))

	assert.ErrorIs(t, f.SelectSlot("04:00 PM - 05:00 PM", client.AppointmentTypeOffline), ErrUnknownSlot)
	assert.Error(t, f.SelectSlot("04:00 PM - 05:00 PM", "video"))
}

func TestFlow_OutOfOrder(t *testing.T) {
	f := NewFlow(testHospital(), &fakeCreator{}, signedIn())
	assert.ErrorIs(t, f.SelectDoctor("rao@example.com"), ErrOutOfOrder)
	assert.ErrorIs(t, f.SelectDepartment("Dermatology"), ErrUnknownDepartment)
	assert.Equal(t, StepNone, f.Step())
}

func TestFlow_SubmitRefusesIncompleteSelection(t *testing.T) {
	creator := &fakeCreator{}
	f := NewFlow(testHospital(), creator, signedIn())
	require.NoError(t, f.SelectDepartment("Cardiology"))
	require.NoError(t, f.SelectDoctor("rao@example.com"))
	require.NoError(t, f.SelectDate("2025-03-01"))

	_, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, ErrIncompleteSelection)
	assert.Empty(t, creator.calls)
}

func TestFlow_SubmitRequiresSignedInUser(t *testing.T) {
	creator := &fakeCreator{}
	f := NewFlow(testHospital(), creator, fakeUsers{})
	require.NoError(t, f.SelectDepartment("Cardiology"))
	require.NoError(t, f.SelectDoctor("rao@example.com"))
	require.NoError(t, f.SelectDate("2025-03-01"))
	require.NoError(t, f.SelectSlot("10:00 AM - 11:00 AM", client.AppointmentTypeOffline))

	_, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.Empty(t, creator.calls)
}

func TestFlow_Submit(t *testing.T) {
	creator := &fakeCreator{}
	f := NewFlow(testHospital(), creator, signedIn())
	require.NoError(t, f.SelectDepartment("Cardiology"))
	require.NoError(t, f.SelectDoctor("rao@example.com"))
	require.NoError(t, f.SelectDate("2025-03-01"))
	require.NoError(t, f.SelectSlot("10:00 AM - 11:00 AM", client.AppointmentTypeOffline))

	appointment, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a1", appointment.ID)
	assert.Equal(t, StepSubmitted, f.Step())

	require.Len(t, creator.calls, 1)
	req := creator.calls[0]
	assert.Equal(t, "p1", req.PatientID)
	assert.Equal(t, "Dr. Rao", req.DoctorName)
	assert.Equal(t, "rao@example.com", req.DoctorEmail)
	assert.Equal(t, "City Hospital", req.HospitalName)
	assert.Equal(t, "12 Main Road", req.HospitalLocation)
	assert.Equal(t, "Cardiology", req.Department)
	assert.Equal(t, "2025-03-01", req.AppointmentDate)
	assert.Equal(t, "10:00 AM - 11:00 AM", req.TimeSlot)
}

func TestFlow_SubmitFailureKeepsSelection(t *testing.T) {
	creator := &fakeCreator{err: errors.New("Failed to create appointment")}
	f := NewFlow(testHospital(), creator, signedIn())
	require.NoError(t, f.SelectDepartment("Cardiology"))
	require.NoError(t, f.SelectDoctor("rao@example.com"))
	require.NoError(t, f.SelectDate("2025-03-01"))
	require.NoError(t, f.SelectSlot("10:00 AM - 11:00 AM", client.AppointmentTypeOffline))

	_, err := f.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, StepSlot, f.Step())
}
