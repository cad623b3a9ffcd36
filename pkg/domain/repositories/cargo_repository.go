package repositories

import "github.com/vsinha/liftplan/pkg/domain/entities"

// CargoRepository provides access to cargos
type CargoRepository interface {
	GetCargo(id string) (*entities.Cargo, error)
	GetAllCargos() ([]*entities.Cargo, error)
	GetCargosByContract(contractID string) ([]*entities.Cargo, error)
	LoadCargos(cargos []*entities.Cargo) error
}
