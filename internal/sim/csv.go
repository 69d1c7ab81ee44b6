package sim

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"homeplan/internal/model"
)

// WritePlanCSV exports the hourly plan, one row per hour of the day.
func WritePlanCSV(path string, res *Result, timestamps []time.Time) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"hour",
		"time",
		"outside_c",
		"inside_c",
		"heating_kwh",
		"appliance_kwh",
		"solar_kwh",
		"consumption_kwh",
		"net_load_kw",
		"price_per_kwh",
		"action",
		"battery_power_kw",
		"grid_power_kw",
		"soc",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for h := 0; h < model.HoursPerDay; h++ {
		ts := ""
		if h < len(timestamps) {
			ts = timestamps[h].Format(time.RFC3339)
		}
		row := []string{
			strconv.Itoa(h),
			ts,
			formatFloat(res.OutsideTempsC[h]),
			formatFloat(res.InsideTempsC[h+1]),
			formatFloat(res.HeatingKWh[h]),
			formatFloat(res.ApplianceTotalKWh[h]),
			formatFloat(res.SolarKWh[h]),
			formatFloat(res.ConsumptionKWh[h]),
			formatFloat(res.NetLoadKW[h]),
			formatFloat(res.PricesPerKWh[h]),
			string(model.ActionFromBatteryPowerKW(res.BatteryPowerKW[h])),
			formatFloat(res.BatteryPowerKW[h]),
			formatFloat(res.GridPowerKW[h]),
			formatFloat(res.SOC[h]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
