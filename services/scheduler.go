package services

import (
	"time"

	"github.com/yeremiapane/restaurant-flow/models"
	"github.com/yeremiapane/restaurant-flow/utils"
	"gorm.io/gorm"
)

// Delay windows for the two timer kinds.
const (
	WalkInBlockDuration = 15 * time.Minute
	CleaningDuration    = 5 * time.Minute
)

// TimerService schedules the two delayed table transitions (walk-in
// expiry, cleaning completion) as durable table_timers rows and fires
// due rows from a poll loop, so pending expirations survive a process
// restart.
//
// Timers are advisory: any explicit transition that moves the table out
// of the guarded status before fire time turns the eventual fire into a
// verified no-op. The handler re-reads current status before acting;
// there is no explicit cancellation.
type TimerService struct {
	DB       *gorm.DB
	Clock    Clock
	Tables   *TableService
	Interval time.Duration
	StopChan chan struct{}
}

func NewTimerService(db *gorm.DB, clock Clock) *TimerService {
	if clock == nil {
		clock = SystemClock
	}
	return &TimerService{
		DB:       db,
		Clock:    clock,
		Interval: 1 * time.Second,
		StopChan: make(chan struct{}),
	}
}

// Schedule persists one delayed transition.
func (ts *TimerService) Schedule(tableID uint, kind, expectedStatus, restoreStatus string, fireAt time.Time) error {
	timer := models.TableTimer{
		TableID:        tableID,
		Kind:           kind,
		ExpectedStatus: expectedStatus,
		RestoreStatus:  restoreStatus,
		FireAt:         fireAt,
	}
	if err := ts.DB.Create(&timer).Error; err != nil {
		return storeErr("timer schedule", err)
	}
	return nil
}

// Start runs the poll loop until Stop is called. Rows scheduled before a
// restart are picked up on the first tick.
func (ts *TimerService) Start() {
	go func() {
		ticker := time.NewTicker(ts.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ts.Poll()
			case <-ts.StopChan:
				return
			}
		}
	}()
}

func (ts *TimerService) Stop() {
	close(ts.StopChan)
}

// Poll fires every due, unfired timer exactly once. Exposed so tests can
// drive the scheduler with a virtual clock instead of sleeping.
func (ts *TimerService) Poll() {
	now := ts.Clock.Now()

	var due []models.TableTimer
	if err := ts.DB.
		Where("fired_at IS NULL AND fire_at <= ?", now).
		Order("fire_at asc").
		Limit(100).
		Find(&due).Error; err != nil {
		utils.ErrorLogger.Printf("Timer poll error: %v", err)
		return
	}

	for _, timer := range due {
		// Claim the row first so a fire can only ever happen once.
		res := ts.DB.Model(&models.TableTimer{}).
			Where("id = ? AND fired_at IS NULL", timer.ID).
			Update("fired_at", now)
		if res.Error != nil || res.RowsAffected == 0 {
			continue
		}

		outcome := ts.fire(&timer)
		if err := ts.DB.Model(&models.TableTimer{}).
			Where("id = ?", timer.ID).
			Update("outcome", outcome).Error; err != nil {
			utils.ErrorLogger.Printf("Timer %d outcome update error: %v", timer.ID, err)
		}
	}
}

// fire applies one due timer. A fire failure is logged and never
// retried: a missed expiry leaves the table blocked/cleaning, which a
// later manual transition corrects. Stale timers are never resurrected.
func (ts *TimerService) fire(timer *models.TableTimer) string {
	var acted bool
	var err error

	switch timer.Kind {
	case models.TimerKindWalkInExpiry:
		acted, err = ts.Tables.ExpireWalkIn(timer.TableID)
	case models.TimerKindCleaningComplete:
		acted, err = ts.Tables.CompleteCleaning(timer.TableID, timer.RestoreStatus)
	default:
		utils.ErrorLogger.Printf("Unknown timer kind '%s' (timer %d)", timer.Kind, timer.ID)
		return models.TimerOutcomeFailed
	}

	if err != nil {
		utils.ErrorLogger.Printf("Timer %d (%s, table %d) fire error: %v",
			timer.ID, timer.Kind, timer.TableID, err)
		return models.TimerOutcomeFailed
	}
	if !acted {
		// Guard-on-fire: the table left the guarded status before the
		// timer fired.
		return models.TimerOutcomeSuperseded
	}

	utils.InfoLogger.Printf("Timer %d fired: %s on table %d", timer.ID, timer.Kind, timer.TableID)
	return models.TimerOutcomeFired
}
