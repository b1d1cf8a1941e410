package repository

import "github.com/bic-devsphere/devsphere-backend/internal/store"

type Repositories struct {
	Members      Members
	Events       Events
	Projects     Projects
	Tags         Tags
	Contributors Contributors
	Users        Users
	AuditLogs    AuditLogs
}

// New builds the typed repositories over the given store. Passing the
// audit-wrapped store makes every mutation issued here subject to auditing.
func New(s store.Store) Repositories {
	return Repositories{
		Members:      &membersRepo{s},
		Events:       &eventsRepo{s},
		Projects:     &projectsRepo{s},
		Tags:         &tagsRepo{s},
		Contributors: &contributorsRepo{s},
		Users:        &usersRepo{s},
		AuditLogs:    &auditLogsRepo{s},
	}
}
