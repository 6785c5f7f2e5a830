package models

import "gorm.io/gorm"

// Query scopes for report listings. Each returns an identity scope when the
// filter value is empty so handlers can chain them unconditionally.

func WithOrigin(origin Origin) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if origin == "" {
			return db
		}
		return db.Where("origin = ?", origin)
	}
}

func WithSpamStatus(status SpamStatus) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if status == "" {
			return db
		}
		return db.Where("spam_status = ?", status)
	}
}

func WithSeverityBucket(bucket SeverityBucket) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if bucket == "" {
			return db
		}
		return db.Where("severity_bucket = ?", bucket)
	}
}

func ForAgentClient(clientID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("agent_client_id = ?", clientID)
	}
}
