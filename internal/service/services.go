package service

import (
	"github.com/streamlinehq/streamline/internal/lib/job"
	"github.com/streamlinehq/streamline/internal/repository"
	"github.com/streamlinehq/streamline/internal/server"
)

// Services is the container for all service instances.
type Services struct {
	Auth     *AuthService
	Users    *UserService
	Contacts *ContactService
	Jobs     *JobsService
	Schedule *ScheduleService
	Invoices *InvoiceService
	Inbox    *InboxService
	Leads    *LeadService
	Catalog  *CatalogService
	Job      *job.JobService
}

// NewService wires every service and registers the service-layer task
// handlers on the job mux. Must run before the job workers start.
func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	leads := NewLeadService(s, repos)
	s.Job.HandleFunc(job.TaskLeadRescore, leads.HandleRescoreTask)

	return &Services{
		Auth:     NewAuthService(s),
		Users:    NewUserService(s, repos),
		Contacts: NewContactService(s, repos),
		Jobs:     NewJobsService(s, repos),
		Schedule: NewScheduleService(s, repos),
		Invoices: NewInvoiceService(s, repos),
		Inbox:    NewInboxService(s, repos),
		Leads:    leads,
		Catalog:  NewCatalogService(s, repos),
		Job:      s.Job,
	}, nil
}
