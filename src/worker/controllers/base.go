package controllers

import (
	"context"
	"sync"

	"server/src/scheduler"
	"server/src/services"
	"server/src/utils"

	"github.com/sirupsen/logrus"
)

// Controller runs the background rate-cache pre-warm so API requests mostly
// hit warm caches.
type Controller struct {
	RatesService   services.RatesServiceI
	Logger         *logrus.Logger
	SchedulerMutex sync.Mutex
	Schedulers     map[string]*scheduler.ScheduledTask
}

func NewController(ratesService services.RatesServiceI, logger *logrus.Logger) *Controller {
	return &Controller{
		RatesService: ratesService,
		Logger:       logger,
		Schedulers:   map[string]*scheduler.ScheduledTask{},
	}
}

// StartPrewarm registers the recurring pre-warm task. Replaces a previously
// registered task of the same name.
func (c *Controller) StartPrewarm(cronSpec string) error {
	task, err := scheduler.NewScheduledTask("rates-prewarm", cronSpec, func() {
		ctx := utils.WithLogger(context.Background(), c.Logger)
		if err := c.RatesService.Prewarm(ctx); err != nil {
			c.Logger.Warnf("scheduled rates prewarm finished with errors: %v", err)
		}
	})
	if err != nil {
		return err
	}

	c.SchedulerMutex.Lock()
	defer c.SchedulerMutex.Unlock()
	if previous, ok := c.Schedulers[task.Name]; ok {
		previous.Cancel()
	}
	c.Schedulers[task.Name] = task
	return nil
}

// RefreshRates forces an immediate pre-warm of every rate cache.
func (c *Controller) RefreshRates(ctx context.Context) error {
	return c.RatesService.Prewarm(ctx)
}

// GetSchedulers returns the registered scheduled tasks keyed by name.
func (c *Controller) GetSchedulers() map[string]*scheduler.ScheduledTask {
	c.SchedulerMutex.Lock()
	defer c.SchedulerMutex.Unlock()

	tasks := make(map[string]*scheduler.ScheduledTask, len(c.Schedulers))
	for name, task := range c.Schedulers {
		tasks[name] = task
	}
	return tasks
}
