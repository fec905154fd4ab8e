package tasks

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application to manage background task processing.
// This interface provides task queue management and worker pool control.
// Example usage:
//
//	scheduler := NewScheduler(linkRepo, aiClient)
//	scheduler.Start()
//	defer scheduler.Stop()
//	scheduler.EnqueueTask(NewReenrichLinksTask(linkRepo, aiClient, batchSize))
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
