package testsCommon

import (
	"context"

	"github.com/plantops/maintenance-kpi-monitoring/services/dashboard/common"
)

// StoreStub -
type StoreStub struct {
	ReplaceEquipmentsHandler func(ctx context.Context, equipments []common.Equipment) error
	GetEquipmentsHandler     func(ctx context.Context) ([]common.Equipment, error)
	CloseHandler             func() error
}

// ReplaceEquipments -
func (stub *StoreStub) ReplaceEquipments(ctx context.Context, equipments []common.Equipment) error {
	if stub.ReplaceEquipmentsHandler != nil {
		return stub.ReplaceEquipmentsHandler(ctx, equipments)
	}

	return nil
}

// GetEquipments -
func (stub *StoreStub) GetEquipments(ctx context.Context) ([]common.Equipment, error) {
	if stub.GetEquipmentsHandler != nil {
		return stub.GetEquipmentsHandler(ctx)
	}

	return make([]common.Equipment, 0), nil
}

// Close -
func (stub *StoreStub) Close() error {
	if stub.CloseHandler != nil {
		return stub.CloseHandler()
	}

	return nil
}

// IsInterfaceNil -
func (stub *StoreStub) IsInterfaceNil() bool {
	return stub == nil
}
