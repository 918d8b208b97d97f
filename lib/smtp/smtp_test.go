package smtp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildBody(t *testing.T) {
	t.Run(`subject check`, func(t *testing.T) {
		body := BuildBody("Система", "Сделка OPP-1 перешла на этап", "Сделка заключена")
		require.True(t, strings.HasPrefix(body, "Subject: Воронка продаж - Сделка заключена\n"))
		require.Contains(t, body, "charset=\"UTF-8\"")
		require.Contains(t, body, "Отправитель: Система")
		require.Contains(t, body, "Сделка OPP-1 перешла на этап")
	})
}

func TestSendEMail(t *testing.T) {
	t.Run(`not configured check`, func(t *testing.T) {
		err := Connect("", "", "", "", false)
		require.Nil(t, err)
		require.Nil(t, Instance.SendEMail("Система", "sale@example.com", "text", "subject"))
	})

	t.Run(`empty recipient check`, func(t *testing.T) {
		err := Connect("user", "pass", "localhost", "25", false)
		require.Nil(t, err)
		require.Nil(t, Instance.SendEMail("Система", "", "text", "subject"))
	})
}
