package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"health-management/internal/domain/entity"
	domainRepo "health-management/internal/domain/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const appointmentCollection = "appointments"

// appointmentDocument is the stored shape. Field names match the existing
// collection so earlier records stay readable.
type appointmentDocument struct {
	ID               bson.ObjectID `bson:"_id,omitempty"`
	PatientID        string        `bson:"auth_id"`
	DoctorName       string        `bson:"doctor_name"`
	DoctorEmail      string        `bson:"doctor_email"`
	HospitalName     string        `bson:"hospital_name"`
	HospitalLocation string        `bson:"hospital_location"`
	Department       string        `bson:"department"`
	AppointmentDate  time.Time     `bson:"appointment_date"`
	TimeSlot         string        `bson:"time_slot"`
	Status           string        `bson:"status"`
	Symptoms         string        `bson:"symptoms"`
	Medications      string        `bson:"medications"`
	Allergies        string        `bson:"allergies"`
	MedicalHistory   string        `bson:"medicalHistory"`
	MedicineHistory  string        `bson:"medicineHistory"`
	Notes            string        `bson:"notes"`
	CreatedAt        time.Time     `bson:"createdAt"`
	UpdatedAt        time.Time     `bson:"updatedAt"`
}

type mongoAppointmentRepository struct {
	collection *mongo.Collection
}

func NewMongoAppointmentRepository(db *mongo.Database) domainRepo.AppointmentRepository {
	return &mongoAppointmentRepository{collection: db.Collection(appointmentCollection)}
}

// EnsureAppointmentIndexes creates the indexes list queries rely on.
func EnsureAppointmentIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(appointmentCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "auth_id", Value: 1}, {Key: "appointment_date", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "doctor_email", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create appointment indexes: %w", err)
	}
	return nil
}

func (r *mongoAppointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	now := time.Now().UTC().Truncate(time.Millisecond)
	appointment.CreatedAt = now
	appointment.UpdatedAt = now

	doc := toAppointmentDocument(appointment)
	doc.ID = bson.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return err
	}
	appointment.ID = doc.ID.Hex()
	return nil
}

func (r *mongoAppointmentRepository) FindByID(ctx context.Context, id string) (*entity.Appointment, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var doc appointmentDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *mongoAppointmentRepository) FindAll(ctx context.Context, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	query := bson.M{}
	if filter.PatientID != "" {
		query["auth_id"] = filter.PatientID
	}
	if filter.DoctorEmail != "" {
		query["doctor_email"] = filter.DoctorEmail
	}
	if filter.Status != nil {
		query["status"] = string(*filter.Status)
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "appointment_date", Value: -1},
		{Key: "createdAt", Value: -1},
		// createdAt is stored at millisecond precision; ObjectIDs grow with insert order.
		{Key: "_id", Value: -1},
	})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}

	var docs []appointmentDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	appointments := make([]entity.Appointment, 0, len(docs))
	for _, doc := range docs {
		appointments = append(appointments, *doc.toEntity())
	}
	return appointments, nil
}

func (r *mongoAppointmentRepository) UpdateStatus(ctx context.Context, id string, status entity.AppointmentStatus) (*entity.Appointment, error) {
	return r.set(ctx, id, bson.M{"status": string(status)})
}

func (r *mongoAppointmentRepository) UpdateDetails(ctx context.Context, id string, details entity.AppointmentDetails) (*entity.Appointment, error) {
	fields := bson.M{}
	if details.Symptoms != nil {
		fields["symptoms"] = *details.Symptoms
	}
	if details.Medications != nil {
		fields["medications"] = *details.Medications
	}
	if details.Allergies != nil {
		fields["allergies"] = *details.Allergies
	}
	if details.MedicalHistory != nil {
		fields["medicalHistory"] = *details.MedicalHistory
	}
	if details.MedicineHistory != nil {
		fields["medicineHistory"] = *details.MedicineHistory
	}
	if details.Notes != nil {
		fields["notes"] = *details.Notes
	}
	return r.set(ctx, id, fields)
}

// set applies a $set on one document and returns it after the update.
func (r *mongoAppointmentRepository) set(ctx context.Context, id string, fields bson.M) (*entity.Appointment, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	fields["updatedAt"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc appointmentDocument
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": fields}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *mongoAppointmentRepository) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func toAppointmentDocument(a *entity.Appointment) appointmentDocument {
	return appointmentDocument{
		PatientID:        a.PatientID,
		DoctorName:       a.DoctorName,
		DoctorEmail:      a.DoctorEmail,
		HospitalName:     a.HospitalName,
		HospitalLocation: a.HospitalLocation,
		Department:       a.Department,
		AppointmentDate:  a.AppointmentDate,
		TimeSlot:         a.TimeSlot,
		Status:           string(a.Status),
		Symptoms:         a.Symptoms,
		Medications:      a.Medications,
		Allergies:        a.Allergies,
		MedicalHistory:   a.MedicalHistory,
		MedicineHistory:  a.MedicineHistory,
		Notes:            a.Notes,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

func (d appointmentDocument) toEntity() *entity.Appointment {
	return &entity.Appointment{
		ID:               d.ID.Hex(),
		PatientID:        d.PatientID,
		DoctorName:       d.DoctorName,
		DoctorEmail:      d.DoctorEmail,
		HospitalName:     d.HospitalName,
		HospitalLocation: d.HospitalLocation,
		Department:       d.Department,
		AppointmentDate:  d.AppointmentDate.UTC(),
		TimeSlot:         d.TimeSlot,
		Status:           entity.AppointmentStatus(d.Status),
		Symptoms:         d.Symptoms,
		Medications:      d.Medications,
		Allergies:        d.Allergies,
		MedicalHistory:   d.MedicalHistory,
		MedicineHistory:  d.MedicineHistory,
		Notes:            d.Notes,
		CreatedAt:        d.CreatedAt.UTC(),
		UpdatedAt:        d.UpdatedAt.UTC(),
	}
}
