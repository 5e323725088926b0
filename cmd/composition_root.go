package cmd

import (
	"log/slog"

	"allocation/internal/adapters/out/eventlog"
	"allocation/internal/adapters/out/postgres"
	"allocation/internal/core/application/usecases/commands"
	"allocation/internal/core/application/usecases/queries"
	"allocation/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  eventlog.NewSlogEventPublisher(slog.Default()),
	}
}

func (c *CompositionRoot) CreateReceiveSerialsCommandHandler() commands.ReceiveSerialsCommandHandler {
	var f commands.SerialUnitUoWFactory = FuncSerialUnitUoWFactory(func() commands.SerialUnitUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReceiveSerialsCommandHandler(f)
}

func (c *CompositionRoot) CreateAssignSerialsCommandHandler() commands.AssignSerialsCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignSerialsCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateUnassignSerialsCommandHandler() commands.UnassignSerialsCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUnassignSerialsCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateAllocateSerialsCommandHandler() commands.AllocateSerialsCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAllocateSerialsCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateMarkUnavailableCommandHandler() commands.MarkUnavailableCommandHandler {
	var f commands.SerialUnitUoWFactory = FuncSerialUnitUoWFactory(func() commands.SerialUnitUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkUnavailableCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateGetAvailableSerialsQueryHandler() queries.GetAvailableSerialsQueryHandler {
	return queries.NewGetAvailableSerialsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAssignedSerialsQueryHandler() queries.GetAssignedSerialsQueryHandler {
	return queries.NewGetAssignedSerialsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllocatedSerialsQueryHandler() queries.GetAllocatedSerialsQueryHandler {
	return queries.NewGetAllocatedSerialsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetInventoryCountsQueryHandler() queries.GetInventoryCountsQueryHandler {
	return queries.NewGetInventoryCountsQueryHandler(c.gormDB)
}

type FuncSerialUnitUoWFactory func() commands.SerialUnitUoW

func (f FuncSerialUnitUoWFactory) Create() commands.SerialUnitUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
