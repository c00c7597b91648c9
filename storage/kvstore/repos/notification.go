package kvrepos

import (
	"github.com/smarttrack/backend/core"
	"github.com/smarttrack/backend/core/notification"
)

type notificationRepository struct {
	db *DB
}

var _ notification.Repository = (*notificationRepository)(nil)

func NewNotificationRepository(db *DB) notification.Repository {
	return &notificationRepository{db: db}
}

func (repo *notificationRepository) QueryByUser(schoolCode, userID string) ([]notification.AppNotification, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	all := load[notification.AppNotification](repo.db, core.NotificationsCollection)
	out := make([]notification.AppNotification, 0, len(all))
	for _, n := range all {
		if n.SchoolCode == schoolCode && n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (repo *notificationRepository) CreateNotification(n notification.AppNotification) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	all := load[notification.AppNotification](repo.db, core.NotificationsCollection)
	return save(repo.db, core.NotificationsCollection, append(all, n))
}

func (repo *notificationRepository) MarkRead(schoolCode, id string) (notification.AppNotification, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	all := load[notification.AppNotification](repo.db, core.NotificationsCollection)
	for i, n := range all {
		if n.SchoolCode == schoolCode && n.ID == id {
			all[i].Read = true
			return all[i], save(repo.db, core.NotificationsCollection, all)
		}
	}
	return notification.AppNotification{}, notification.ErrNotFound
}
