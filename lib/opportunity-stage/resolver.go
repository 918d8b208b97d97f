package opportunitystagehandler

import (
	dbmodels "sales-pipeline-backend/models/db"
	"sort"
)

type stageKind int

// порядок вычисления: обычные этапы, затем проигрыш, поставка и заключение сделки
const (
	stageKindNormal stageKind = iota
	stageKindClosedLost
	stageKindDelivery
	stageKindDealClosed
)

func kindOf(stage dbmodels.StageConfig) stageKind {
	switch {
	case stage.IsClosedLost:
		return stageKindClosedLost
	case stage.IsDelivery:
		return stageKindDelivery
	case stage.IsDealClosed:
		return stageKindDealClosed
	}
	return stageKindNormal
}

// OrderStages возвращает копию списка, обычные этапы сохраняют исходный порядок
func OrderStages(catalog []dbmodels.StageConfig) []dbmodels.StageConfig {
	ordered := make([]dbmodels.StageConfig, len(catalog))
	copy(ordered, catalog)
	sort.SliceStable(ordered, func(i, j int) bool {
		return kindOf(ordered[i]) < kindOf(ordered[j])
	})
	return ordered
}

type Resolution struct {
	Index   int                    // индекс последнего достигнутого этапа, -1 если не достигнут ни один
	Reached []dbmodels.StageConfig // этапы с 0 по Index
	WinRate float64
}

func (r Resolution) Current() *dbmodels.StageConfig {
	if r.Index < 0 || len(r.Reached) == 0 {
		return nil
	}
	return &r.Reached[len(r.Reached)-1]
}

// Resolve проходит все этапы, побеждает последний достигнутый
func Resolve(catalog []dbmodels.StageConfig, results ConditionResultSet) Resolution {
	ordered := OrderStages(catalog)
	index := -1
	for k, stage := range ordered {
		if StageReached(stage, results) {
			index = k
		}
	}
	if index < 0 {
		return Resolution{Index: -1, Reached: []dbmodels.StageConfig{}}
	}
	return Resolution{
		Index:   index,
		Reached: ordered[:index+1],
		WinRate: ordered[index].WinRate,
	}
}
