package repositories

import "github.com/vsinha/liftplan/pkg/domain/entities"

// ContractRepository provides access to contracts
type ContractRepository interface {
	GetContract(id string) (*entities.Contract, error)
	GetAllContracts() ([]*entities.Contract, error)
	LoadContracts(contracts []*entities.Contract) error
}

// CustomerRepository provides access to customers
type CustomerRepository interface {
	GetCustomer(id string) (*entities.Customer, error)
	GetAllCustomers() ([]*entities.Customer, error)
	LoadCustomers(customers []*entities.Customer) error
}
