package repository

import (
	"github.com/streamlinehq/streamline/internal/server"
)

// Repositories is the container for all repository instances, wired
// once at startup and handed to the service layer.
type Repositories struct {
	Users         *UsersRepository
	Contacts      *ContactsRepository
	Jobs          *JobsRepository
	Schedule      *ScheduleRepository
	Invoices      *InvoicesRepository
	Conversations *ConversationsRepository
	Leads         *LeadsRepository
	Catalog       *CatalogRepository
}

// NewRepositories constructs every repository from the shared
// application container.
func NewRepositories(s *server.Server) *Repositories {
	pool := s.DB.Pool

	return &Repositories{
		Users:         &UsersRepository{pool: pool},
		Contacts:      &ContactsRepository{pool: pool},
		Jobs:          &JobsRepository{pool: pool},
		Schedule:      &ScheduleRepository{pool: pool},
		Invoices:      &InvoicesRepository{pool: pool},
		Conversations: &ConversationsRepository{pool: pool},
		Leads:         &LeadsRepository{pool: pool},
		Catalog:       &CatalogRepository{pool: pool},
	}
}
