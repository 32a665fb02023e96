package main

import (
	"flag"
	"log"
	"time"

	"github.com/mikesmitty/ltc2983"
	"github.com/mikesmitty/ltc2983/internal/config"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

func main() {
	bus := flag.String("bus", "", "Name of the SPI bus")
	cfgPath := flag.String("config", "channels.yaml", "Channel map file")
	reject := flag.String("reject", "50/60", "Mains rejection filter (50, 60 or 50/60)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatal(err)
	}
	assignments, err := cfg.Assignments()
	if err != nil {
		log.Fatal(err)
	}

	opts := ltc2983.DefaultOptions()
	switch *reject {
	case "50/60":
		opts.Rejection = ltc2983.Reject50And60Hz
	case "60":
		opts.Rejection = ltc2983.Reject60Hz
	case "50":
		opts.Rejection = ltc2983.Reject50Hz
	default:
		log.Fatal("Invalid rejection filter")
	}

	_, err = host.Init()
	if err != nil {
		log.Fatal(err)
	}

	sb, err := spireg.Open(*bus)
	if err != nil {
		log.Fatal(err)
	}

	dev, err := ltc2983.New(sb, opts)
	if err != nil {
		log.Fatal(err)
	}

	channels := make([]ltc2983.Channel, 0, len(assignments))
	for _, a := range assignments {
		if err := dev.ConfigureChannel(a.Channel, a.Probe); err != nil {
			log.Fatal(err)
		}
		channels = append(channels, a.Channel)
	}

	ticker := time.NewTicker(1 * time.Second)

	for {
		if err := dev.StartConversions(channels...); err != nil {
			log.Fatal(err)
		}
		for {
			st, err := dev.Status()
			if err != nil {
				log.Fatal(err)
			}
			if st.Done {
				break
			}
			time.Sleep(50 * time.Millisecond)
		}

		results, err := dev.ReadTemperatures(channels...)
		if err != nil {
			log.Print(err)
		} else {
			for i, res := range results {
				log.Printf("CH%d: %.3f°C (faults: %s)", channels[i], res.Temperature.Celsius(), res.Faults)
			}
		}

		<-ticker.C
	}
}
