// Package scheduler periyodik bakım işlerini çalıştırır.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"hausa-platform/config"

	"github.com/go-co-op/gocron"
)

const (
	jobTimeout             = 2 * time.Minute
	sessionCleanupInterval = 1 * time.Hour
)

// Maintenance zamanlanmış işlerin çağırdığı servis.
type Maintenance interface {
	ResetStale(ctx context.Context) (int, error)
	CleanupSessions(ctx context.Context) (int64, error)
}

type Scheduler struct {
	scheduler *gocron.Scheduler
	jobs      Maintenance
	cfg       config.SchedulerConfig
}

func New(cfg config.SchedulerConfig, jobs Maintenance) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		jobs:      jobs,
		cfg:       cfg,
	}
}

// Start işleri kaydeder ve zamanlayıcıyı arka planda başlatır.
func (s *Scheduler) Start() error {
	if err := s.register(); err != nil {
		return err
	}
	s.scheduler.StartAsync()
	log.Printf("Zamanlayıcı başladı: seri sıfırlama her gün %s UTC", s.cfg.StreakResetAt)
	return nil
}

func (s *Scheduler) register() error {
	if _, err := s.scheduler.Every(1).Day().At(s.cfg.StreakResetAt).Do(s.resetStreaks); err != nil {
		return fmt.Errorf("seri sıfırlama işi kaydedilemedi: %w", err)
	}
	if _, err := s.scheduler.Every(sessionCleanupInterval).Do(s.cleanupSessions); err != nil {
		return fmt.Errorf("oturum temizleme işi kaydedilemedi: %w", err)
	}
	return nil
}

func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// RunOnce tüm bakım işlerini hemen çalıştırır.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	if _, err := s.jobs.ResetStale(ctx); err != nil {
		return err
	}
	_, err := s.jobs.CleanupSessions(ctx)
	return err
}

func (s *Scheduler) resetStreaks() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if _, err := s.jobs.ResetStale(ctx); err != nil {
		log.Printf("Seri sıfırlama hatası: %v", err)
	}
}

func (s *Scheduler) cleanupSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if _, err := s.jobs.CleanupSessions(ctx); err != nil {
		log.Printf("Oturum temizleme hatası: %v", err)
	}
}
