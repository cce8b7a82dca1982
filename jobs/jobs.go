package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"caretrack/config/db"
	"caretrack/logger"
	"caretrack/models"
)

// StartDailyScheduler runs the roll-call reset every day at 00:05: staff go
// back to Absent until they check in, doctors back to Available.
func StartDailyScheduler() *cron.Cron {
	c := cron.New()

	c.AddFunc("5 0 * * *", func() {
		logger.L.Info("running daily roll-call reset")
		RunDailyReset()
	})

	c.Start()
	return c
}

func RunDailyReset() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()

	res, err := db.OpenCollection(db.StaffCollection).UpdateMany(ctx,
		bson.M{"attendanceStatus": models.AttendancePresent},
		bson.M{"$set": bson.M{"attendanceStatus": models.AttendanceAbsent, "updatedAt": now}},
	)
	if err != nil {
		logger.L.Error("staff attendance reset failed", zap.Error(err))
	} else {
		logger.L.Info("staff attendance reset", zap.Int64("modified", res.ModifiedCount))
	}

	res, err = db.OpenCollection(db.DoctorCollection).UpdateMany(ctx,
		bson.M{"availabilityStatus": models.DoctorUnavailable},
		bson.M{"$set": bson.M{"availabilityStatus": models.DoctorAvailable, "updatedAt": now}},
	)
	if err != nil {
		logger.L.Error("doctor availability reset failed", zap.Error(err))
	} else {
		logger.L.Info("doctor availability reset", zap.Int64("modified", res.ModifiedCount))
	}
}
