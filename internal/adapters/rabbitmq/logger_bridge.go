package rabbitmq

import (
	"portfolio-service/internal/core/port"
	"portfolio-service/pkg/rabbitmq/rabbitmq_common"
)

// PkgLoggerBridge пишет логи pkg/rabbitmq (пары ключ-значение) в LoggerPort компонента.
type PkgLoggerBridge struct {
	logger port.LoggerPort
}

// NewPkgLoggerBridge помечает записи именем компонента, например "rabbitmq_producer".
func NewPkgLoggerBridge(logger port.LoggerPort, component string) rabbitmq_common.Logger {
	return PkgLoggerBridge{logger: logger.WithFields(port.Fields{
		"component": component,
		"transport": "amqp",
	})}
}

// pairs собирает поля из пар ключ-значение. Непарный хвост и нестроковые ключи пропускаются.
func pairs(keysAndValues []interface{}) port.Fields {
	var fields port.Fields
	for i := 1; i < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i-1].(string)
		if !ok {
			continue
		}
		if fields == nil {
			fields = port.Fields{}
		}
		fields[key] = keysAndValues[i]
	}
	return fields
}

func (b PkgLoggerBridge) Debug(msg string, kv ...interface{}) { b.logger.Debug(msg, pairs(kv)) }
func (b PkgLoggerBridge) Info(msg string, kv ...interface{}) { b.logger.Info(msg, pairs(kv)) }
func (b PkgLoggerBridge) Warn(msg string, kv ...interface{}) { b.logger.Warn(msg, pairs(kv)) }

func (b PkgLoggerBridge) Error(err error, msg string, kv ...interface{}) {
	b.logger.Error(msg, err, pairs(kv))
}
