package shell_test

import (
	"bytes"
	"context"
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/teslamotors/vehicle-assistant/mocks"
	"github.com/teslamotors/vehicle-assistant/pkg/account"
	"github.com/teslamotors/vehicle-assistant/pkg/assistant"
	"github.com/teslamotors/vehicle-assistant/pkg/shell"
)

var fleet = []account.Vehicle{
	{ID: 100021, VIN: "5YJ3E1EA0KF000001", DisplayName: "Roadrunner", State: "online", IDS: "100021"},
	{ID: 100022, VIN: "5YJ3E1EA0KF000002", DisplayName: "Coyote", State: "asleep", IDS: "100022"},
}

var _ = Describe("Shell", func() {
	var (
		ctx         context.Context
		ctrl        *gomock.Controller
		controller  *mocks.ShellController
		interpreter *mocks.ShellInterpreter
		out         *bytes.Buffer
		sh          *shell.Shell
	)

	BeforeEach(func() {
		ctx = context.Background()
		ctrl = gomock.NewController(GinkgoT())
		controller = mocks.NewShellController(ctrl)
		interpreter = mocks.NewShellInterpreter(ctrl)
		out = &bytes.Buffer{}
		sh = shell.New(controller, interpreter, out, shell.WithNoColor())
	})

	load := func() {
		controller.EXPECT().ListVehicles(gomock.Any()).Return(fleet, nil)
		Expect(sh.Load(ctx)).To(Succeed())
		out.Reset()
	}

	Describe("Load", func() {
		It("selects the first vehicle", func() {
			controller.EXPECT().ListVehicles(gomock.Any()).Return(fleet, nil)
			Expect(sh.Load(ctx)).To(Succeed())
			Expect(sh.Current().IDS).To(Equal("100021"))
			Expect(out.String()).To(ContainSubstring("Loaded 2 vehicle(s)"))
			Expect(out.String()).To(ContainSubstring("Selected: Roadrunner (5YJ3E1EA0KF000001)"))
		})

		It("warns when the account has no vehicles", func() {
			controller.EXPECT().ListVehicles(gomock.Any()).Return(nil, nil)
			Expect(sh.Load(ctx)).To(Succeed())
			Expect(sh.Current()).To(BeNil())
			Expect(out.String()).To(ContainSubstring("No vehicles found"))
		})

		It("reports listing errors", func() {
			controller.EXPECT().ListVehicles(gomock.Any()).Return(nil, errors.New("HTTP 401"))
			Expect(sh.Load(ctx)).To(MatchError("HTTP 401"))
			Expect(out.String()).To(ContainSubstring("Failed to load vehicles"))
		})
	})

	Describe("Execute", func() {
		It("exits on exit and quit", func() {
			Expect(sh.Execute(ctx, "exit")).To(BeTrue())
			Expect(sh.Execute(ctx, "quit")).To(BeTrue())
		})

		It("ignores blank lines", func() {
			Expect(sh.Execute(ctx, "   ")).To(BeFalse())
			Expect(out.String()).To(BeEmpty())
		})

		It("rejects unbalanced quotes", func() {
			Expect(sh.Execute(ctx, `ask "is it cold`)).To(BeFalse())
			Expect(out.String()).To(ContainSubstring("Invalid command"))
		})

		It("requires a selected vehicle", func() {
			sh.Execute(ctx, "honk")
			Expect(out.String()).To(ContainSubstring(shell.ErrNoVehicleSelected.Error()))
		})

		It("lists the available commands", func() {
			sh.Execute(ctx, "help")
			for _, verb := range []string{"status", "stop-climate", "ask", "exit"} {
				Expect(out.String()).To(ContainSubstring(verb))
			}
		})

		It("describes a single command", func() {
			sh.Execute(ctx, "help climate")
			Expect(out.String()).To(ContainSubstring("Usage: climate [ TEMP ]"))
			Expect(out.String()).To(ContainSubstring("Celsius"))
		})

		Context("with a vehicle selected", func() {
			BeforeEach(load)

			It("honks", func() {
				controller.EXPECT().HonkHorn(gomock.Any(), "100021").Return(true)
				sh.Execute(ctx, "honk")
				Expect(out.String()).To(ContainSubstring("✓ Honked!"))
			})

			It("reports failed commands", func() {
				controller.EXPECT().FlashLights(gomock.Any(), "100021").Return(false)
				sh.Execute(ctx, "flash")
				Expect(out.String()).To(ContainSubstring("⚠ Failed to flash the lights"))
			})

			It("locks and unlocks", func() {
				gomock.InOrder(
					controller.EXPECT().LockDoors(gomock.Any(), "100021", true).Return(true),
					controller.EXPECT().LockDoors(gomock.Any(), "100021", false).Return(true),
				)
				sh.Execute(ctx, "lock")
				sh.Execute(ctx, "unlock")
				Expect(out.String()).To(ContainSubstring("Doors locked"))
				Expect(out.String()).To(ContainSubstring("Doors unlocked"))
			})

			It("starts climate control at the default temperature", func() {
				controller.EXPECT().StartClimate(gomock.Any(), "100021", account.DefaultClimateTemp).Return(true)
				sh.Execute(ctx, "climate")
				Expect(out.String()).To(ContainSubstring("Climate control on at 22°C"))
			})

			It("starts climate control at the requested temperature", func() {
				controller.EXPECT().StartClimate(gomock.Any(), "100021", 20.5).Return(true)
				sh.Execute(ctx, "climate 20.5")
			})

			It("rejects a malformed temperature", func() {
				sh.Execute(ctx, "climate warm")
				Expect(out.String()).To(ContainSubstring("temperature must be a number"))
			})

			It("stops climate control and wakes the vehicle", func() {
				controller.EXPECT().StopClimate(gomock.Any(), "100021").Return(true)
				controller.EXPECT().WakeUp(gomock.Any(), "100021").Return(false)
				sh.Execute(ctx, "stop-climate")
				sh.Execute(ctx, "wake")
				Expect(out.String()).To(ContainSubstring("Climate control off"))
				Expect(out.String()).To(ContainSubstring("not awake yet"))
			})

			It("prints the vehicle summary", func() {
				controller.EXPECT().VehicleSummary(gomock.Any(), "100021").Return("Name: Roadrunner")
				sh.Execute(ctx, "status")
				Expect(out.String()).To(ContainSubstring("Name: Roadrunner"))
			})

			It("lists vehicles in a table", func() {
				controller.EXPECT().ListVehicles(gomock.Any()).Return(fleet, nil)
				sh.Execute(ctx, "vehicles")
				Expect(out.String()).To(ContainSubstring("VIN"))
				Expect(out.String()).To(ContainSubstring("5YJ3E1EA0KF000002"))
				Expect(out.String()).To(ContainSubstring("Current: Roadrunner"))
			})

			DescribeTable("select",
				func(key, want string) {
					sh.Execute(ctx, "select "+key)
					Expect(sh.Current().DisplayName).To(Equal(want))
				},
				Entry("by position", "2", "Coyote"),
				Entry("by id_s", "100022", "Coyote"),
				Entry("by name", "Coyote", "Coyote"),
				Entry("by quoted name", `"Roadrunner"`, "Roadrunner"),
			)

			It("selects by a numeric id_s that is not a position", func() {
				controller.EXPECT().ListVehicles(gomock.Any()).Return([]account.Vehicle{
					{ID: 1492931337154063, DisplayName: "Wile", IDS: "1492931337154063"},
					{ID: 1492931337154064, DisplayName: "Acme", IDS: "1492931337154064"},
				}, nil)
				Expect(sh.Load(ctx)).To(Succeed())
				sh.Execute(ctx, "select 1492931337154064")
				Expect(sh.Current().DisplayName).To(Equal("Acme"))
				Expect(out.String()).NotTo(ContainSubstring("vehicle not found"))
			})

			It("keeps the selection when the vehicle is not found", func() {
				sh.Execute(ctx, "select 7")
				Expect(sh.Current().DisplayName).To(Equal("Roadrunner"))
				Expect(out.String()).To(ContainSubstring("vehicle not found: 7"))
			})

			It("answers questions with the vehicle state as context", func() {
				state := account.State{"battery_level": 80.0}
				controller.EXPECT().GetVehicleState(gomock.Any(), "100021").Return(state, nil)
				interpreter.EXPECT().GenerateResponse(gomock.Any(), "how much charge is left", gomock.Any()).
					Return(&assistant.Response{Content: "About 80%."})
				sh.Execute(ctx, "ask how much charge is left")
				Expect(out.String()).To(ContainSubstring("About 80%."))
			})

			It("chats without the vehicle state", func() {
				interpreter.EXPECT().GenerateResponse(gomock.Any(), "hello there").
					Return(&assistant.Response{Content: "Hi!"})
				sh.Execute(ctx, "chat hello there")
				Expect(out.String()).To(ContainSubstring("Hi!"))
			})

			It("requires a question", func() {
				sh.Execute(ctx, "ask")
				Expect(out.String()).To(ContainSubstring("missing QUESTION"))
			})

			It("explains and advises", func() {
				state := account.State{"state": "online"}
				controller.EXPECT().GetVehicleState(gomock.Any(), "100021").Return(state, nil).Times(2)
				interpreter.EXPECT().ExplainVehicleData(gomock.Any(), gomock.Any()).Return("All good.")
				interpreter.EXPECT().GetAdvice(gomock.Any(), gomock.Any()).Return("Charge tonight.")
				sh.Execute(ctx, "explain")
				sh.Execute(ctx, "advice")
				Expect(out.String()).To(ContainSubstring("All good."))
				Expect(out.String()).To(ContainSubstring("Charge tonight."))
			})

			It("reports state read failures", func() {
				controller.EXPECT().GetVehicleState(gomock.Any(), "100021").Return(nil, errors.New("vehicle is offline"))
				sh.Execute(ctx, "advice")
				Expect(out.String()).To(ContainSubstring("failed to read vehicle state: vehicle is offline"))
			})

			It("clears the conversation", func() {
				interpreter.EXPECT().ClearHistory()
				sh.Execute(ctx, "reset")
				Expect(out.String()).To(ContainSubstring("Conversation cleared"))
			})
		})
	})

	Describe("natural-language requests", func() {
		state := account.State{"state": "online"}

		BeforeEach(func() {
			load()
			controller.EXPECT().GetVehicleState(gomock.Any(), "100021").Return(state, nil)
		})

		interpretAs := func(line string, intent assistant.Intent) {
			interpreter.EXPECT().ParseCommand(gomock.Any(), line, gomock.Any()).Return(intent)
			Expect(sh.Execute(ctx, line)).To(BeFalse())
		}

		It("executes confident intents", func() {
			controller.EXPECT().LockDoors(gomock.Any(), "100021", true).Return(true)
			interpretAs("please lock the car", assistant.Intent{Command: assistant.CommandLock, Confidence: 0.98})
			Expect(out.String()).To(ContainSubstring("Command 'lock' executed"))
		})

		It("passes the requested temperature", func() {
			controller.EXPECT().StartClimate(gomock.Any(), "100021", 23.0).Return(true)
			interpretAs("warm it up to 23", assistant.Intent{
				Command:    assistant.CommandStartClimate,
				Parameters: map[string]interface{}{"temperature": 23.0},
				Confidence: 0.9,
			})
		})

		It("falls back to the default temperature", func() {
			controller.EXPECT().StartClimate(gomock.Any(), "100021", account.DefaultClimateTemp).Return(false)
			interpretAs("turn on the AC", assistant.Intent{Command: assistant.CommandStartClimate, Confidence: 0.9})
			Expect(out.String()).To(ContainSubstring("Command 'start_climate' failed"))
		})

		It("prints the summary for status requests", func() {
			controller.EXPECT().VehicleSummary(gomock.Any(), "100021").Return("Battery Level: 85%")
			interpretAs("what's my battery at", assistant.Intent{
				Command:    assistant.CommandGetStatus,
				Parameters: map[string]interface{}{"what": "battery"},
				Confidence: 0.95,
			})
			Expect(out.String()).To(ContainSubstring("Battery Level: 85%"))
		})

		It("interprets requests that start with a verb", func() {
			controller.EXPECT().LockDoors(gomock.Any(), "100021", true).Return(true)
			interpretAs("lock the car please", assistant.Intent{Command: assistant.CommandLock, Confidence: 0.95})
			Expect(out.String()).To(ContainSubstring("Command 'lock' executed"))
			Expect(out.String()).NotTo(ContainSubstring("Usage:"))
		})

		It("interprets verb requests with apostrophes", func() {
			controller.EXPECT().FlashLights(gomock.Any(), "100021").Return(true)
			interpretAs("flash the car's lights", assistant.Intent{Command: assistant.CommandFlashLights, Confidence: 0.9})
			Expect(out.String()).To(ContainSubstring("Command 'flash_lights' executed"))
		})

		It("interprets program arguments that start with a verb", func() {
			controller.EXPECT().HonkHorn(gomock.Any(), "100021").Return(true)
			interpreter.EXPECT().ParseCommand(gomock.Any(), "honk twice", gomock.Any()).
				Return(assistant.Intent{Command: assistant.CommandHonk, Confidence: 0.9})
			sh.ExecuteArgs(ctx, []string{"honk", "twice"})
			Expect(out.String()).To(ContainSubstring("Command 'honk' executed"))
		})

		It("does not execute intents at the threshold", func() {
			interpretAs("maybe honk", assistant.Intent{Command: assistant.CommandHonk, Confidence: 0.7})
			Expect(out.String()).To(ContainSubstring("Low confidence (0.70)"))
		})

		It("reports low confidence for uninterpretable requests", func() {
			interpretAs("sing a song", assistant.UnknownIntent())
			Expect(out.String()).To(ContainSubstring("Low confidence (0.00)"))
		})

		It("names confident but unknown commands", func() {
			interpretAs("open the frunk", assistant.Intent{
				Command:    assistant.CommandUnknown,
				Requested:  "open_frunk",
				Confidence: 0.9,
			})
			Expect(out.String()).To(ContainSubstring("Unknown command: open_frunk"))
		})

		It("honors a custom threshold", func() {
			sh = shell.New(controller, interpreter, out, shell.WithNoColor(), shell.WithConfidenceThreshold(0.5))
			controller.EXPECT().ListVehicles(gomock.Any()).Return(fleet, nil)
			Expect(sh.Load(ctx)).To(Succeed())
			controller.EXPECT().HonkHorn(gomock.Any(), "100021").Return(true)
			interpretAs("maybe honk", assistant.Intent{Command: assistant.CommandHonk, Confidence: 0.6})
			Expect(out.String()).To(ContainSubstring("Command 'honk' executed"))
		})
	})

	Describe("without an interpreter", func() {
		BeforeEach(func() {
			sh = shell.New(controller, nil, out, shell.WithNoColor())
			load()
		})

		It("rejects free-form input", func() {
			sh.Execute(ctx, "lock the car")
			Expect(out.String()).To(ContainSubstring("Unknown command: lock the car"))
			Expect(out.String()).NotTo(ContainSubstring("Usage:"))
		})

		It("rejects extra arguments", func() {
			sh.Execute(ctx, "climate 20 21")
			Expect(out.String()).To(ContainSubstring("Unknown command: climate 20 21"))
		})

		It("rejects AI verbs", func() {
			sh.Execute(ctx, "advice")
			Expect(out.String()).To(ContainSubstring(shell.ErrNoInterpreter.Error()))
		})
	})

	Describe("Run", func() {
		It("executes lines until exit", func() {
			controller.EXPECT().ListVehicles(gomock.Any()).Return(fleet, nil)
			controller.EXPECT().HonkHorn(gomock.Any(), "100021").Return(true)
			Expect(sh.Load(ctx)).To(Succeed())

			input := strings.NewReader("honk\nexit\nhonk\n")
			Expect(sh.Run(ctx, input)).To(Succeed())
			Expect(strings.Count(out.String(), "Honked!")).To(Equal(1))
			Expect(out.String()).To(ContainSubstring(shell.Prompt))
		})

		It("stops at end of input", func() {
			Expect(sh.Run(ctx, strings.NewReader("help\n"))).To(Succeed())
			Expect(out.String()).To(ContainSubstring("Available commands"))
		})
	})
	Describe("ExecuteArgs", func() {
		BeforeEach(load)

		It("keeps words that were quoted on the command line together", func() {
			interpreter.EXPECT().GenerateResponse(gomock.Any(), "what's up").Return(&assistant.Response{Content: "Not much."})
			Expect(sh.ExecuteArgs(ctx, []string{"chat", "what's up"})).To(BeFalse())
			Expect(out.String()).To(ContainSubstring("Not much."))
		})

		It("interprets free-form arguments", func() {
			controller.EXPECT().GetVehicleState(gomock.Any(), "100021").Return(account.State{}, nil)
			controller.EXPECT().FlashLights(gomock.Any(), "100021").Return(true)
			interpreter.EXPECT().ParseCommand(gomock.Any(), "please flash the lights", gomock.Any()).
				Return(assistant.Intent{Command: assistant.CommandFlashLights, Confidence: 0.9})
			sh.ExecuteArgs(ctx, []string{"please", "flash", "the", "lights"})
			Expect(out.String()).To(ContainSubstring("Command 'flash_lights' executed"))
		})
	})

	It("writes usage without color codes", func() {
		var buf bytes.Buffer
		shell.Usage(&buf)
		Expect(buf.String()).To(HavePrefix("Available commands:"))
		Expect(buf.String()).NotTo(ContainSubstring("\x1b["))
	})
})
