package stagenotify

import (
	"fmt"
	"sales-pipeline-backend/lib/smtp"
	initchecker "sales-pipeline-backend/lib/utils/init-checker"
	"sales-pipeline-backend/models"
	dbmodels "sales-pipeline-backend/models/db"
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	KindClosedLost = "closed_lost"
	KindDealClosed = "deal_closed"
)

type Provider interface {
	// StageReached уведомляет ответственного о переходе сделки на терминальный этап
	StageReached(opp dbmodels.Opportunity, stage dbmodels.StageConfig) error
}

var Instance Provider

func NewHandler() {
	initchecker.CheckInit(
		"smtp", smtp.Instance,
	)
	Instance = impl{
		sender: smtp.Instance,
	}
}

type impl struct {
	sender smtp.Provider
}

func (i impl) getLogger(opp dbmodels.Opportunity) *log.Entry {
	return log.
		WithField("tenant_id", opp.TenantID).
		WithField("opportunity_id", opp.ID)
}

// KindOf возвращает вид терминального этапа, пустая строка для прочих этапов
func KindOf(stage dbmodels.StageConfig) string {
	switch {
	case stage.IsClosedLost:
		return KindClosedLost
	case stage.IsDealClosed:
		return KindDealClosed
	}
	return ""
}

func (i impl) StageReached(opp dbmodels.Opportunity, stage dbmodels.StageConfig) error {
	logger := i.getLogger(opp).WithField("stage_id", stage.ID)
	if opp.SalePersonEmail == "" {
		logger.Debug("уведомление об этапе не отправлено, не указана почта ответственного")
		return nil
	}
	var subject string
	switch KindOf(stage) {
	case KindClosedLost:
		subject = "Сделка проиграна"
	case KindDealClosed:
		subject = "Сделка заключена"
	default:
		return nil
	}
	err := i.sender.SendEMail(models.SystemUser, opp.SalePersonEmail, buildMessage(opp, stage), subject)
	if err != nil {
		logger.WithError(err).Error("ошибка отправки уведомления об этапе сделки")
		return err
	}
	return nil
}

func buildMessage(opp dbmodels.Opportunity, stage dbmodels.StageConfig) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Сделка: %v %v\r\n", opp.Code, opp.Title))
	sb.WriteString(fmt.Sprintf("Этап: %v\r\n", stage.Indicator))
	sb.WriteString(fmt.Sprintf("Вероятность выигрыша: %v%%\r\n", stage.WinRate))
	if !opp.BudgetValue.IsZero() {
		sb.WriteString(fmt.Sprintf("Бюджет: %v\r\n", opp.BudgetValue.StringFixed(2)))
	}
	return sb.String()
}
