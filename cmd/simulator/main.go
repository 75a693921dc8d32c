package main

import (
	"encoding/json"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/coolcalc/internal/config"
	"github.com/ANIKETSHETTY47/coolcalc/internal/domain"
	"github.com/ANIKETSHETTY47/coolcalc/internal/load"
)

// The simulator plays a client filling in every screen with the default inputs.
func main() {
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	logger := config.Logger()

	opts := mqtt.NewClientOptions().AddBroker(config.MQTTBroker()).SetClientID("coolcalc-simulator")
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("mqtt connect")
	}
	defer client.Disconnect(250)

	sent := 0
	for _, room := range domain.RoomTypes() {
		forms := load.DefaultForms(room)
		for _, stage := range domain.Stages(room) {
			form, ok := forms[stage]
			if !ok {
				continue
			}
			payload, err := json.Marshal(form)
			if err != nil {
				log.Fatal().Err(err).Msg("encode stage")
			}
			topic := config.MQTTTopic() + "/" + string(room) + "/" + string(stage)
			token := client.Publish(topic, 1, false, payload)
			if token.Wait() && token.Error() != nil {
				logger.Error().Err(token.Error()).Str("topic", topic).Msg("publish failed")
				continue
			}
			sent++
			time.Sleep(200 * time.Millisecond)
		}
	}
	logger.Info().Int("stages", sent).Msg("simulation done")
}
