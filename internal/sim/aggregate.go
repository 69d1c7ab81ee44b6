package sim

import (
	"homeplan/internal/appliance"
	"homeplan/internal/model"
)

// aggregate sums heating and appliance energy into total consumption and
// subtracts solar generation to form the hourly net load. With a one-hour
// timestep, kWh per hour and average kW are numerically equal, so the net
// load series feeds the optimizer directly.
func aggregate(heatingKWh []float64, appliances map[appliance.Kind][]float64, solarKWh []float64) (applianceTotal, consumption, netLoad []float64) {
	applianceTotal = make([]float64, model.HoursPerDay)
	consumption = make([]float64, model.HoursPerDay)
	netLoad = make([]float64, model.HoursPerDay)

	for h := 0; h < model.HoursPerDay; h++ {
		for _, load := range appliances {
			applianceTotal[h] += load[h]
		}
		consumption[h] = heatingKWh[h] + applianceTotal[h]
		netLoad[h] = consumption[h] - solarKWh[h]
	}
	return applianceTotal, consumption, netLoad
}
