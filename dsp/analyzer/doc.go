// Package analyzer moves post-EQ audio from the real-time thread to a
// visualization consumer and turns it into renderable spectrum paths.
//
// The pipeline is a chain of single-producer single-consumer queues:
//
//	audio thread: ChannelCollector.Update -> blocks queue
//	consumer:     blocks -> FFTDataGenerator -> spectra queue
//	              spectra -> PathGenerator -> paths queue -> latest Path
//
// [PathProducer] drives the consumer half for one channel. Every queue has
// a fixed capacity and drops the newest value when full, so the audio
// thread never blocks.
package analyzer
