package mocks

//go:generate mockery --name TableStore --srcpkg github.com/puesto-lab/puesto/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name HealthChecker --srcpkg github.com/puesto-lab/puesto/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
