package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository    *UserRepository
	ProfileRepository *ProfileRepository
	ChatRepository    *ChatRepository
	BotRepository     *BotRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:    NewUserRepository(db),
		ProfileRepository: NewProfileRepository(db),
		ChatRepository:    NewChatRepository(db),
		BotRepository:     NewBotRepository(db),
	}
}
