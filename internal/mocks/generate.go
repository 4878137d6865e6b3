package mocks

//go:generate mockery --name CounterStore --srcpkg github.com/aevon-lab/affinity/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name CooldownStore --srcpkg github.com/aevon-lab/affinity/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name RetentionStore --srcpkg github.com/aevon-lab/affinity/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
