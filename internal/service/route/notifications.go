package route

import (
	"bytes"
	"fmt"
	"html/template"

	"routing/internal/entities"
)

var assignmentTemplate = template.Must(template.New("assignment").Parse(`<html><body>
<p>Hola {{.DriverName}},</p>
<p>Se te asignó la ruta <b>#{{.RouteID}}</b> con el vehículo <b>{{.Plate}}</b>.</p>
<p>Paradas: {{.Stops}}. La ruta queda pendiente hasta que la inicies.</p>
</body></html>`))

var enRouteTemplate = template.Must(template.New("en_route").Parse(`<html><body>
<p>Hola {{.ClientName}},</p>
<p>Tu pedido <b>#{{.OrderID}}</b> está en camino a {{.Address}}.</p>
</body></html>`))

type assignmentData struct {
	DriverName string
	RouteID    int64
	Plate      string
	Stops      int
}

type enRouteData struct {
	ClientName string
	OrderID    int64
	Address    string
}

func assignmentEmail(route *entities.Route, driver *entities.Driver, plate string) (subject, body string, err error) {
	var buf bytes.Buffer
	err = assignmentTemplate.Execute(&buf, assignmentData{
		DriverName: driver.Name,
		RouteID:    route.ID,
		Plate:      plate,
		Stops:      len(route.Stops),
	})
	if err != nil {
		return "", "", fmt.Errorf("render assignment email: %w", err)
	}
	return fmt.Sprintf("Ruta #%d asignada", route.ID), buf.String(), nil
}

func enRouteEmail(contact entities.OrderContact) (subject, body string, err error) {
	var buf bytes.Buffer
	err = enRouteTemplate.Execute(&buf, enRouteData{
		ClientName: contact.ClientName,
		OrderID:    contact.OrderID,
		Address:    contact.Address,
	})
	if err != nil {
		return "", "", fmt.Errorf("render en route email: %w", err)
	}
	return fmt.Sprintf("Tu pedido #%d está en camino", contact.OrderID), buf.String(), nil
}
