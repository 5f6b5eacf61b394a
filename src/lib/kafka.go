package lib

import (
	"encoding/json"
	"log"
	"os"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

func KafkaProduceMessage(clientId string, topic string, payload map[string]any) error {
	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": os.Getenv("KAFKA_BROKER"),
		"client.id":         clientId,
		"acks":              "all",
	})
	if err != nil {
		log.Printf("Error on producer: %s\n", err.Error())
		return err
	}
	defer p.Close()

	value, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error serializing payload: %s\n", err.Error())
		return err
	}

	err = p.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Value:          value,
	}, nil)
	if err != nil {
		log.Printf("Error producing message: %s\n", err.Error())
		return err
	}
	return nil
}

// KafkaConsumeTopic polls a topic and hands each message body to the handler.
// Runs until the consumer errors out.
func KafkaConsumeTopic(groupId string, topic string, handler func(body string)) {
	consumer, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers": os.Getenv("KAFKA_BROKER"),
		"group.id":          groupId,
		"auto.offset.reset": "smallest",
		"retry.backoff.ms":  100,
	})
	if err != nil {
		log.Printf("Error on consumer: %s\n", err.Error())
		return
	}
	if err := consumer.SubscribeTopics([]string{topic}, nil); err != nil {
		log.Printf("Error subscribing to topic %s: %s\n", topic, err.Error())
		return
	}
	go func() {
		log.Printf("[%s]: waiting for messages...", topic)
		run := true
		for run {
			ev := consumer.Poll(100)
			switch e := ev.(type) {
			case *kafka.Message:
				go handler(string(e.Value))
			case kafka.Error:
				log.Printf("[%s] consumer error: %v\n", topic, e)
				run = false
			default:
			}
		}
		consumer.Close()
	}()
}
