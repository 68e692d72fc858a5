package cron

import (
	"context"
	"log"
	"time"

	"bookcircle/config"
	rentalRepo "bookcircle/database/repository/rental"
	"bookcircle/services/notification"

	"github.com/hibiken/asynq"
)

const (
	TypeOverdueSweep = "rental:overdue_sweep"
	TypeDueReminder  = "rental:due_reminder"
)

// InitRentalWorker runs the async worker and its periodic scheduler in the
// background. The sweep marks active rentals past due as overdue; the
// reminder pings borrowers a day before the due date.
func InitRentalWorker(rentals rentalRepo.RentalRepository, notifSvc notification.NotificationService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeOverdueSweep, handleOverdueSweep(rentals, notifSvc))
	mux.HandleFunc(TypeDueReminder, handleDueReminder(rentals, notifSvc))

	scheduler := asynq.NewScheduler(redisOpts, nil)
	if _, err := scheduler.Register("@every 1h", asynq.NewTask(TypeOverdueSweep, nil)); err != nil {
		log.Printf("[RentalWorker] failed to register overdue sweep: %v", err)
	}
	if _, err := scheduler.Register("@every 6h", asynq.NewTask(TypeDueReminder, nil)); err != nil {
		log.Printf("[RentalWorker] failed to register due reminder: %v", err)
	}

	go func() {
		if err := scheduler.Run(); err != nil {
			log.Printf("[RentalWorker] scheduler stopped: %v", err)
		}
	}()

	// Start async worker with retry logic
	go func() {
		log.Println("[RentalWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[RentalWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[RentalWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleOverdueSweep(rentals rentalRepo.RentalRepository, notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		flipped, err := rentals.MarkOverdue(time.Now())
		if err != nil {
			log.Printf("[OverdueSweep] sweep failed: %v", err)
			return err
		}
		if len(flipped) == 0 {
			return nil
		}

		log.Printf("[OverdueSweep] marked %d rentals overdue", len(flipped))
		for _, rental := range flipped {
			data := map[string]interface{}{"rentalId": rental.ID, "bookId": rental.BookID}
			if err := notifSvc.Notify(rental.BorrowerID, "rental_overdue",
				"Your rental is overdue. Late fees are accruing daily.", data); err != nil {
				log.Printf("[OverdueSweep] failed to notify borrower %s: %v", rental.BorrowerID, err)
			}
			if err := notifSvc.Notify(rental.LenderID, "rental_overdue",
				"Your lent book was not returned on time.", data); err != nil {
				log.Printf("[OverdueSweep] failed to notify lender %s: %v", rental.LenderID, err)
			}
		}
		return nil
	}
}

func handleDueReminder(rentals rentalRepo.RentalRepository, notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		now := time.Now()
		due, err := rentals.ListDueBetween(now, now.Add(24*time.Hour))
		if err != nil {
			log.Printf("[DueReminder] query failed: %v", err)
			return err
		}

		for _, rental := range due {
			if err := notifSvc.Notify(rental.BorrowerID, "rental_due_soon",
				"Your rental is due within a day. Return it or request an extension.",
				map[string]interface{}{"rentalId": rental.ID, "bookId": rental.BookID}); err != nil {
				log.Printf("[DueReminder] failed to notify borrower %s: %v", rental.BorrowerID, err)
			}
		}
		return nil
	}
}
