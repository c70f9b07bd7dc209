package converter

import (
	"bytes"
	"embed"
	"text/template"

	"github.com/RamonCharlles/Gestao-componentes/internal/model"
)

var (
	//go:embed templates/component_registered.tmpl
	componentRegisteredFS       embed.FS
	componentRegisteredTemplate = template.Must(
		template.ParseFS(componentRegisteredFS, "templates/component_registered.tmpl"),
	)
)

func BuildComponentRegistered(event model.ComponentRegistered) (string, error) {
	n := model.ComponentRegisteredNotification{
		RecordID:        event.RecordID.String(),
		PartNumber:      event.PartNumber,
		Description:     event.Description,
		EquipmentTag:    event.EquipmentTag,
		Responsible:     event.Responsible,
		WithdrawalOrder: event.WithdrawalOrder,
		WithdrawalDate:  event.WithdrawalDate.String(),
		HasImage:        event.HasImage,
	}

	var buf bytes.Buffer
	if err := componentRegisteredTemplate.Execute(&buf, n); err != nil {
		return "", err
	}

	return buf.String(), nil
}
