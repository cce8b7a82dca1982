package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"caretrack/apperr"
	"caretrack/cache"
	"caretrack/config/db"
	"caretrack/metrics"
	"caretrack/models"
)

type CreateBillInput struct {
	PatientID     int64   `json:"patientId" binding:"required"`
	DoctorID      int64   `json:"doctorId" binding:"required"`
	TotalAmount   float64 `json:"totalAmount" binding:"required,gt=0"`
	PaymentStatus string  `json:"paymentStatus" binding:"required,oneof=Pending Paid 'Partially Paid'"`
	PaymentMethod string  `json:"paymentMethod" binding:"required,oneof=Cash Card UPI Insurance"`
}

type BillFilter struct {
	PaymentStatus string
}

// CreateBill inserts the bill and appends its reference to the patient's
// bills list transactionally.
func CreateBill(ctx context.Context, in CreateBillInput) (models.Bill, error) {
	var patient models.Patient
	err := db.OpenCollection(db.PatientCollection).
		FindOne(ctx, bson.M{"patientNumber": in.PatientID}).
		Decode(&patient)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Bill{}, apperr.New(apperr.KindNotFound, "patient not found")
		}
		return models.Bill{}, apperr.Internal(err)
	}

	var doctor models.Doctor
	err = db.OpenCollection(db.DoctorCollection).
		FindOne(ctx, bson.M{"doctorNumber": in.DoctorID}).
		Decode(&doctor)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Bill{}, apperr.New(apperr.KindNotFound, "doctor not found")
		}
		return models.Bill{}, apperr.Internal(err)
	}

	number, err := NextSequence(ctx, db.BillCollection)
	if err != nil {
		return models.Bill{}, err
	}

	now := time.Now()
	bill := models.Bill{
		ID:            primitive.NewObjectID(),
		BillNumber:    number,
		PatientNumber: patient.PatientNumber,
		DoctorNumber:  doctor.DoctorNumber,
		TotalAmount:   in.TotalAmount,
		PaymentStatus: in.PaymentStatus,
		PaymentMethod: in.PaymentMethod,
		BillingDate:   now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = db.RunTransaction(ctx, func(ctx context.Context) error {
		if _, err := db.OpenCollection(db.BillCollection).InsertOne(ctx, bill); err != nil {
			return apperr.Internal(err)
		}
		res, err := db.OpenCollection(db.PatientCollection).UpdateOne(ctx,
			bson.M{"_id": patient.ID},
			bson.M{
				"$push": bson.M{"bills": bill.ID},
				"$set":  bson.M{"updatedAt": now},
			},
		)
		if err != nil {
			return apperr.Internal(err)
		}
		if res.MatchedCount == 0 {
			return apperr.New(apperr.KindNotFound, "patient not found")
		}
		return nil
	})
	if err != nil {
		return models.Bill{}, err
	}

	cache.Invalidate(ctx, fmt.Sprintf("%s%d", cache.PatientKey, patient.PatientNumber))
	metrics.EntityCreated("bill")
	return bill, nil
}

// FetchBillByNumber returns the bill with payer and doctor names resolved.
func FetchBillByNumber(ctx context.Context, number int64) (models.BillDetail, error) {
	var bill models.Bill
	err := db.OpenCollection(db.BillCollection).
		FindOne(ctx, bson.M{"billNumber": number}).
		Decode(&bill)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.BillDetail{}, apperr.New(apperr.KindNotFound, "bill not found")
		}
		return models.BillDetail{}, apperr.Internal(err)
	}

	detail := models.BillDetail{Bill: bill}

	var patient models.Patient
	if err := db.OpenCollection(db.PatientCollection).
		FindOne(ctx, bson.M{"patientNumber": bill.PatientNumber}).
		Decode(&patient); err == nil {
		detail.PatientName = patient.Name
	}
	var doctor models.Doctor
	if err := db.OpenCollection(db.DoctorCollection).
		FindOne(ctx, bson.M{"doctorNumber": bill.DoctorNumber}).
		Decode(&doctor); err == nil {
		detail.DoctorName = doctor.Name
	}

	return detail, nil
}

// FetchAllBills lists bills, optionally narrowed to a payment status, with
// names resolved in two batched lookups rather than per bill.
func FetchAllBills(ctx context.Context, f BillFilter) ([]models.BillDetail, error) {
	filter := bson.M{}
	if f.PaymentStatus != "" {
		filter["paymentStatus"] = f.PaymentStatus
	}

	cursor, err := db.OpenCollection(db.BillCollection).
		Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "billNumber", Value: 1}}))
	if err != nil {
		return nil, apperr.Internal(err)
	}

	bills := []models.Bill{}
	if err := cursor.All(ctx, &bills); err != nil {
		return nil, apperr.Internal(err)
	}

	patientNumbers := []int64{}
	doctorNumbers := []int64{}
	for _, b := range bills {
		patientNumbers = append(patientNumbers, b.PatientNumber)
		doctorNumbers = append(doctorNumbers, b.DoctorNumber)
	}

	patientNames := map[int64]string{}
	doctorNames := map[int64]string{}
	if len(bills) > 0 {
		pc, err := db.OpenCollection(db.PatientCollection).
			Find(ctx, bson.M{"patientNumber": bson.M{"$in": patientNumbers}})
		if err != nil {
			return nil, apperr.Internal(err)
		}
		patients := []models.Patient{}
		if err := pc.All(ctx, &patients); err != nil {
			return nil, apperr.Internal(err)
		}
		for _, p := range patients {
			patientNames[p.PatientNumber] = p.Name
		}

		dc, err := db.OpenCollection(db.DoctorCollection).
			Find(ctx, bson.M{"doctorNumber": bson.M{"$in": doctorNumbers}})
		if err != nil {
			return nil, apperr.Internal(err)
		}
		doctors := []models.Doctor{}
		if err := dc.All(ctx, &doctors); err != nil {
			return nil, apperr.Internal(err)
		}
		for _, d := range doctors {
			doctorNames[d.DoctorNumber] = d.Name
		}
	}

	details := []models.BillDetail{}
	for _, b := range bills {
		details = append(details, models.BillDetail{
			Bill:        b,
			PatientName: patientNames[b.PatientNumber],
			DoctorName:  doctorNames[b.DoctorNumber],
		})
	}
	return details, nil
}

// FetchBillsForPatient backs the patient dashboard's billing panel.
func FetchBillsForPatient(ctx context.Context, patientNumber int64) ([]models.Bill, error) {
	cursor, err := db.OpenCollection(db.BillCollection).Find(ctx,
		bson.M{"patientNumber": patientNumber},
		options.Find().SetSort(bson.D{{Key: "billNumber", Value: 1}}),
	)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	bills := []models.Bill{}
	if err := cursor.All(ctx, &bills); err != nil {
		return nil, apperr.Internal(err)
	}
	return bills, nil
}
