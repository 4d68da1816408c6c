// Package domain defines the entities shared by the repository,
// service, and handler layers: users, contacts, jobs, invoices,
// schedulable resources, inbox conversations, sales leads, and the
// parts catalog.
package domain
