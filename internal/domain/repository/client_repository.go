package repository

import "github.com/jhoicas/Tempo-api/internal/domain/entity"

// ClientRepository puerto de persistencia para clientes.
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	ListByUser(userID string) ([]*entity.Client, error)
}
